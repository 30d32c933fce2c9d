/*
Package config loads harvester settings.

Sources, lowest precedence first:

  - built-in defaults (text output, 4 workers, 30s timeout, sanitising on)
  - an optional YAML file
  - a dotenv file (.env by default, skipped when absent)
  - environment variables

Command-line flags are applied on top by the CLI. Credentials are read from
FORMBUILDER_URL, FORMBUILDER_USERNAME and FORMBUILDER_PASSWORD; the legacy
123_FORM_BUILDER_* names are accepted as fallbacks.

Example YAML:

	base_url: https://api.example.test/v2
	username: me@example.test
	form_id: "50313"
	output: yaml
	concurrency: 8
	timeout: 10s
	sanitize: false
*/
package config
