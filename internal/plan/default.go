package plan

// Default returns the built-in sweep plan for a consolidated MCP Atlassian
// workspace. After the extended server absorbed the variant implementations,
// everything listed here is leftover scaffolding; the Retained list names the
// files the consolidation deliberately keeps.
func Default() *Plan {
	return &Plan{
		Categories: []Category{
			{
				Name: "Original source tree",
				Targets: []Target{
					{Pattern: "src", Kind: KindDirectory},
				},
			},
			{
				Name: "Redundant server variants",
				Targets: []Target{
					{Pattern: "mcp_atlassian_basic.py", Kind: KindFile},
					{Pattern: "mcp_atlassian_enhanced.py", Kind: KindFile},
					{Pattern: "cookie_enhanced_server.py", Kind: KindFile},
				},
			},
			{
				Name: "Development test files",
				Targets: []Target{
					{Pattern: "test_tools_count.py", Kind: KindFile},
					{Pattern: "test_mcp_protocol.py", Kind: KindFile},
					{Pattern: "test_cookie_auth.py", Kind: KindFile},
					{Pattern: "test_jira_connection.py", Kind: KindFile},
					{Pattern: "verify_complete_implementation.py", Kind: KindFile},
					{Pattern: "test_*.py", Kind: KindGlob},
					{Pattern: "verify_*.py", Kind: KindGlob},
				},
			},
			{
				Name: "Duplicate configuration files",
				Targets: []Target{
					{Pattern: "claude_desktop_config.json", Kind: KindFile},
					{Pattern: "claude_desktop_config_*.json", Kind: KindGlob},
					{Pattern: "config/*.json", Kind: KindGlob},
				},
			},
			{
				Name: "Analysis and planning documents",
				Targets: []Target{
					{Pattern: "CONSOLIDATION_PLAN.md", Kind: KindFile},
					{Pattern: "IMPLEMENTATION_STATUS.md", Kind: KindFile},
					{Pattern: "COOKIE_AUTH_ANALYSIS.md", Kind: KindFile},
					{Pattern: "TOOLS_COMPARISON.md", Kind: KindFile},
					{Pattern: "MIGRATION_NOTES.md", Kind: KindFile},
					{Pattern: "API_COVERAGE.md", Kind: KindFile},
					{Pattern: "CLEANUP_CHECKLIST.md", Kind: KindFile},
				},
			},
			{
				Name: "Consolidated extras",
				Targets: []Target{
					{Pattern: "development", Kind: KindDirectory},
					{Pattern: "archive", Kind: KindDirectory},
					{Pattern: "consolidated/core/advanced_cookie_reader.py", Kind: KindFile},
				},
			},
			{
				Name: "Miscellaneous",
				Targets: []Target{
					// pip leaves this behind when a version constraint is
					// passed unquoted to the shell
					{Pattern: "=1.2.0", Kind: KindFile},
				},
			},
		},
		Retained: []string{
			"consolidated/mcp_atlassian_extended.py",
			"consolidated/core/convention_based_manager.py",
			"README.md",
			"pyproject.toml",
			".env.example",
		},
	}
}
