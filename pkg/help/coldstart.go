package help

const ColdstartYAML = `# web-content-extractor Quick Start

providers:
  rest: "Remote agent over HTTP (default). Set WCE_AGENT_API_KEY."
  openai: "OpenAI-compatible chat model. Set WCE_OPENAI_API_KEY."
  local: "No network agent: fetches the page itself and distils it locally"

output_formats:
  table: "Table (default)"
  bullet: "Bullet List"
  keyvalue: "Key-Value"

parameters:
  predefined: [Definitions, Features, Pricing, Categories, Specifications, FAQs]
  custom: "Any text via --custom (trimmed, duplicates ignored)"

commands:
  basic_extract: |
    wce extract --url https://example.com --param Pricing --param Features

  custom_parameters: |
    wce extract --url example.com --param FAQs --custom "Support hours" --format keyvalue

  interactive: |
    wce extract --interactive

  export_and_copy: |
    wce extract --url https://example.com --param Pricing --csv pricing.csv --copy

  machine_output: |
    wce extract --url https://example.com --param Pricing --output json

  history: |
    wce history list
    wce history show 1768471200000
    wce history clear --yes

  theme: |
    wce theme show
    wce theme toggle

  web_ui: |
    wce serve --addr 127.0.0.1:8080

storage:
  - "History and theme live in web-content-extractor.db (SQLite) unless storage.backend says otherwise"
  - "History keeps the 50 most recent successful extractions, newest first"
  - "--ephemeral keeps everything in memory for one run"

config:
  file: "--config wce.yaml (optional)"
  env: "WCE_* variables override the file; .env is loaded when present"

error_behavior:
  - "Incomplete form (no URL or no parameter): rejected before any agent call"
  - "Agent or parse failures: shown as Extraction Failed, not saved to history"
  - "Exit codes: 0=success, 1=extraction failed or invalid input"
`
