package redact

// DefaultWholeFileRules returns the built-in whole-file suppression table.
// The slice is freshly allocated on every call so callers may append safely.
func DefaultWholeFileRules() []WholeFileRule {
	return []WholeFileRule{
		{Pattern: ".env", Reason: "[REDACTED - Environment Variables]"},
		{Pattern: ".env.*", Reason: "[REDACTED - Environment Variables]"},
		{Pattern: "config.yml", Reason: "[REDACTED - Application Config]"},
		{Pattern: "development.yml", Reason: "[REDACTED - Development Config]"},
		{Pattern: "production.yml", Reason: "[REDACTED - Production Config]"},
		{Pattern: "staging.yml", Reason: "[REDACTED - Staging Config]"},
		{Pattern: "secrets/", Reason: "[REDACTED - Directory containing sensitive data]"},
		{Pattern: ".aws/", Reason: "[REDACTED - AWS Configuration]"},
		{Pattern: ".ssh/", Reason: "[REDACTED - SSH Keys and Configuration]"},
		{Pattern: "id_rsa", Reason: "[REDACTED - SSH Private Key]"},
		{Pattern: "id_rsa.pub", Reason: "[REDACTED - SSH Public Key]"},
		{Pattern: "id_dsa", Reason: "[REDACTED - SSH Private Key]"},
		{Pattern: ".htpasswd", Reason: "[REDACTED - HTTP Basic Auth Passwords]"},
		{Pattern: "wp-config.php", Reason: "[REDACTED - WordPress Configuration]"},
		{Pattern: "config/secrets.yml", Reason: "[REDACTED - Application Secrets]"},
		{Pattern: "credentials.json", Reason: "[REDACTED - API Credentials]"},
		{Pattern: ".npmrc", Reason: "[REDACTED - NPM Configuration]"},
		{Pattern: ".pypirc", Reason: "[REDACTED - PyPI Configuration]"},
		{Pattern: "*.pem", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "*.key", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "*.p12", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "*.pfx", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "authorized_keys", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "known_hosts", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "oauth_token", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: "oauth.json", Reason: "[REDACTED - Sensitive Data]"},
		{Pattern: ".netrc", Reason: "[REDACTED - Sensitive Data]"},
	}
}

// DefaultContentRules returns the built-in in-content redaction table. Each
// rule destroys the secret value while keeping the surrounding line legible,
// and none of them can match the placeholder text they produce.
func DefaultContentRules() []ContentRule {
	return []ContentRule{
		{
			Name:        "assignment-secret",
			Expression:  `(?i)\b(api[_-]?key|apikey|api[_-]?secret|aws[_-]?secret[_-]?access[_-]?key|secret|token|password|passwd|credential)(\s*[:=]\s*)["']?[^"'\s\[\]]{8,}["']?`,
			Replacement: `${1}${2}` + Placeholder,
		},
		{
			Name:        "bearer-token",
			Expression:  `(?i)\bbearer\s+[A-Za-z0-9._~+/-]{20,}=*`,
			Replacement: "Bearer " + Placeholder,
		},
		{
			Name:        "jwt",
			Expression:  `eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`,
			Replacement: Placeholder,
		},
		{
			Name:        "aws-access-key-id",
			Expression:  `\bAKIA[0-9A-Z]{16}\b`,
			Replacement: Placeholder,
		},
		{
			Name:        "github-token",
			Expression:  `\bgh[pousr]_[A-Za-z0-9_]{36,}`,
			Replacement: Placeholder,
		},
		{
			Name:        "slack-token",
			Expression:  `\bxox[bporas]-[A-Za-z0-9-]{10,}`,
			Replacement: Placeholder,
		},
		{
			Name:        "anthropic-api-key",
			Expression:  `\bsk-ant-[A-Za-z0-9_-]{20,}`,
			Replacement: Placeholder,
		},
		{
			Name:        "openai-api-key",
			Expression:  `\bsk-[A-Za-z0-9]{20,}`,
			Replacement: Placeholder,
		},
		{
			Name:        "connection-string-password",
			Expression:  `(?i)\b([a-z][a-z0-9+.-]*://[^:/@\s]+):([^@/\s\[\]]+)@`,
			Replacement: `${1}:` + Placeholder + `@`,
		},
		{
			Name:        "private-key-block",
			Expression:  `-----BEGIN [A-Z ]*PRIVATE KEY-----(?s:.*?)-----END [A-Z ]*PRIVATE KEY-----`,
			Replacement: Placeholder,
		},
	}
}
