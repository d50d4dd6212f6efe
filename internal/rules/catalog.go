package rules

// Built-in catalog. Everything here is either regenerated by tooling or
// specific to one machine, so none of it belongs in a shared source copy.
var (
	defaultDirNames = []string{
		// version control
		".git", ".svn", ".hg", ".bzr",
		// editors and IDEs
		".idea", ".vscode", ".vs",
		// dependency and package manager caches
		"node_modules", "bower_components", ".npm", ".yarn", ".pnpm-store",
		".gradle", ".terraform", ".cache",
		// python
		"__pycache__", ".pytest_cache", ".mypy_cache", ".ruff_cache", ".tox",
		"venv", ".venv", "env",
		// framework build caches
		".next", ".nuxt",
		// build output
		"dist", "build", "target", "bin", "obj", "out",
	}

	defaultFileNames = []string{
		".DS_Store", "Thumbs.db", "desktop.ini",
	}

	defaultSuffixes = []string{
		".log", ".tmp", ".temp",
		".bak", "~",
		".swp", ".swo",
		".lock",
		".pyc", ".pyo", ".class", ".o", ".obj",
	}
)
