package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formsubmissions/pkg/client"
	"github.com/goliatone/go-formsubmissions/pkg/config"
	"github.com/goliatone/go-formsubmissions/pkg/prompt"
	"github.com/goliatone/go-formsubmissions/pkg/testsupport"
)

type stubDriver struct {
	selectIdx int
	password  string
	selects   int
}

func (s *stubDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	s.selects++
	return s.selectIdx, nil
}

func (s *stubDriver) Password(context.Context, prompt.InputConfig) (string, error) {
	return s.password, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	})
	serve := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(testsupport.MustReadFixture(t, filepath.Join("testdata", name)))
		}
	}
	mux.HandleFunc("GET /forms", serve("forms.json"))
	mux.HandleFunc("GET /forms/{id}", serve("form.json"))
	mux.HandleFunc("GET /forms/{id}/fields", serve("fields.json"))
	mux.HandleFunc("GET /forms/{id}/submissions", serve("submissions.json"))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	driver *stubDriver
}

func newHarness(t *testing.T, srv *httptest.Server, env map[string]string) *harness {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	a := newApp(stdout, stderr)
	merged := map[string]string{
		"FORMBUILDER_URL":      srv.URL,
		"FORMBUILDER_USERNAME": "user",
		"FORMBUILDER_PASSWORD": "secret",
	}
	for k, v := range env {
		merged[k] = v
	}
	a.lookupEnv = func(key string) (string, bool) {
		v, ok := merged[key]
		return v, ok
	}
	a.interactive = func() bool { return false }
	driver := &stubDriver{}
	a.driver = driver
	a.httpOptions = []client.Option{client.WithHTTPClient(srv.Client())}
	return &harness{app: a, stdout: stdout, stderr: stderr, driver: driver}
}

func (h *harness) run(args ...string) error {
	cmd := newRootCommand(h.app)
	cmd.SetArgs(append(args, "--env-file", filepath.Join("testdata", "empty.env")))
	return cmd.ExecuteContext(context.Background())
}

func TestForms_ListsTable(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("forms"); err != nil {
		t.Fatalf("forms: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"ID", "NAME", "50313", "Pix Orga feedback", "Newsletter signup"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestForm_PrintsDetails(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("form", "50313"); err != nil {
		t.Fatalf("form: %v", err)
	}
	if !json.Valid(h.stdout.Bytes()) || !strings.Contains(h.stdout.String(), "Pix Orga feedback") {
		t.Fatalf("unexpected form output:\n%s", h.stdout.String())
	}
}

func TestFields_PrintsDefinitionsAndWarnings(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("fields", "50313"); err != nil {
		t.Fatalf("fields: %v", err)
	}
	var payload struct {
		Fields []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"fields"`
		Warnings []struct {
			Code string `json:"code"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, h.stdout.String())
	}
	if len(payload.Fields) != 4 || payload.Fields[1].Kind != "multiple-choice" || payload.Fields[2].Kind != "unknown" {
		t.Fatalf("unexpected fields: %+v", payload.Fields)
	}
	if len(payload.Warnings) != 1 || payload.Warnings[0].Code != "unsupported_field_type" {
		t.Fatalf("unexpected warnings: %+v", payload.Warnings)
	}
}

func TestSubmissions_RendersText(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("submissions", "50313"); err != nil {
		t.Fatalf("submissions: %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{
		"submission 501\n",
		"  Favourite colours: Red=yes, Green=-, Blue=no\n",
		"  Organisation: Pix Orga\n",
		"  Attachment: report.pdf\n",
		"warnings (3)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(h.stderr.String(), "level=WARN") {
		t.Fatalf("expected warnings to be logged:\n%s", h.stderr.String())
	}
}

func TestSubmissions_FlagsOverrideEnvironment(t *testing.T) {
	h := newHarness(t, newServer(t), map[string]string{
		"FORMBUILDER_FORM_ID":  "50313",
		"FORMBUILDER_OUTPUT":   "text",
		"FORMBUILDER_PASSWORD": "wrong",
	})
	if err := h.run("submissions", "--password", "secret", "--output", "json", "--no-sanitize", "--log-level", "error"); err != nil {
		t.Fatalf("submissions: %v", err)
	}
	var export struct {
		FormID      string `json:"formId"`
		Submissions []struct {
			Answers []struct {
				Value *string `json:"value"`
			} `json:"answers"`
		} `json:"submissions"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &export); err != nil {
		t.Fatalf("decode: %v\n%s", err, h.stdout.String())
	}
	if export.FormID != "50313" || len(export.Submissions) != 3 {
		t.Fatalf("unexpected export: %+v", export)
	}
	if got := export.Submissions[0].Answers[3].Value; got == nil || *got != "<b>Pix</b> Orga" {
		t.Fatalf("expected unsanitised value, got %v", got)
	}
	if h.stderr.Len() != 0 {
		t.Fatalf("expected no log output at error level:\n%s", h.stderr.String())
	}
}

func TestSubmissions_TemplateFlagSelectsTemplateRenderer(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("submissions", "50313", "--template", "{% for s in submissions %}{{ s.id }};{% endfor %}"); err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if got := h.stdout.String(); got != "501;502;503;" {
		t.Fatalf("unexpected template output %q", got)
	}
}

func TestSubmissions_PickerWhenInteractive(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	h.app.interactive = func() bool { return true }
	h.driver.selectIdx = 0

	if err := h.run("submissions", "-o", "json"); err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if h.driver.selects != 1 || !strings.Contains(h.stdout.String(), `"formId": "50313"`) {
		t.Fatalf("expected picker selection to drive the harvest:\n%s", h.stdout.String())
	}
}

func TestSubmissions_NoFormID(t *testing.T) {
	h := newHarness(t, newServer(t), nil)
	if err := h.run("submissions"); !errors.Is(err, errNoFormID) {
		t.Fatalf("expected errNoFormID, got %v", err)
	}
}

func TestLoadConfig_PromptsForPassword(t *testing.T) {
	h := newHarness(t, newServer(t), map[string]string{"FORMBUILDER_PASSWORD": ""})
	h.app.interactive = func() bool { return true }
	h.driver.password = "secret"

	if err := h.run("form", "50313"); err != nil {
		t.Fatalf("form: %v", err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	srv := newServer(t)

	h := newHarness(t, srv, map[string]string{"FORMBUILDER_PASSWORD": ""})
	var cfgErr *config.Error
	if err := h.run("forms"); !errors.As(err, &cfgErr) || cfgErr.Field != "password" {
		t.Fatalf("expected missing password error, got %v", err)
	}

	h = newHarness(t, srv, nil)
	if err := h.run("forms", "--timeout", "soon"); err == nil || !strings.Contains(err.Error(), "--timeout") {
		t.Fatalf("expected timeout flag error, got %v", err)
	}

	h = newHarness(t, srv, nil)
	if err := h.run("forms", "--log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}

	h = newHarness(t, srv, nil)
	var statusErr *client.StatusError
	if err := h.run("forms", "--password", "nope"); !errors.As(err, &statusErr) {
		t.Fatalf("expected status error for bad credentials, got %v", err)
	}
}
