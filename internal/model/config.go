package model

// ProjectConfig is the caller-supplied generation configuration. The core
// trusts its shape once passed; defaults and presence checks happen in the
// config package before anything reaches the generators.
type ProjectConfig struct {
	Project    ProjectInfo      `json:"project" yaml:"project"`
	Database   DatabaseConfig   `json:"database" yaml:"database"`
	Features   FeatureToggles   `json:"features" yaml:"features"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	GitHub     *GitHubConfig    `json:"github,omitempty" yaml:"github,omitempty"`
}

// ProjectInfo describes the generated project.
type ProjectInfo struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
}

// DatabaseType is the target database engine.
type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgresql"
	MySQL      DatabaseType = "mysql"
	MongoDB    DatabaseType = "mongodb"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseConfig describes the database the generated backend connects to.
type DatabaseConfig struct {
	Type     DatabaseType `json:"type" yaml:"type"`
	Host     string       `json:"host,omitempty" yaml:"host,omitempty"`
	Port     int          `json:"port,omitempty" yaml:"port,omitempty"`
	Database string       `json:"database,omitempty" yaml:"database,omitempty"`
}

// FeatureToggles enables optional generation features.
type FeatureToggles struct {
	Authentication bool `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	Authorization  bool `json:"authorization,omitempty" yaml:"authorization,omitempty"`
	Swagger        bool `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	AsyncAPI       bool `json:"asyncapi,omitempty" yaml:"asyncapi,omitempty"`
	Docker         bool `json:"docker,omitempty" yaml:"docker,omitempty"`
	Testing        bool `json:"testing,omitempty" yaml:"testing,omitempty"`
	Logging        bool `json:"logging,omitempty" yaml:"logging,omitempty"`
	Monitoring     bool `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
}

// GenerationConfig controls where and how artifacts are written.
type GenerationConfig struct {
	OutputDir   string `json:"outputDir" yaml:"outputDir"`
	TemplateDir string `json:"templateDir,omitempty" yaml:"templateDir,omitempty"`
	Overwrite   bool   `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
	Backup      bool   `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// GitHubConfig configures repository upload, handled outside the core.
type GitHubConfig struct {
	Owner   string   `json:"owner" yaml:"owner"`
	Token   string   `json:"token" yaml:"token"`
	Private bool     `json:"private,omitempty" yaml:"private,omitempty"`
	Topics  []string `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// FileType classifies a generated artifact.
type FileType string

const (
	FileSource        FileType = "source"
	FileConfig        FileType = "config"
	FileDocumentation FileType = "documentation"
	FileTest          FileType = "test"
)

// GeneratedFile is one output artifact. Path is forward-slash-relative to
// the generation output directory.
type GeneratedFile struct {
	Path     string   `json:"path" yaml:"path"`
	Content  string   `json:"content" yaml:"content"`
	Type     FileType `json:"type" yaml:"type"`
	Language string   `json:"language,omitempty" yaml:"language,omitempty"`
}

// GenerationResult is the public result of every generator. Generators never
// panic or return Go errors across this boundary; failures are reported
// through Success and Errors so a caller can run generators independently
// and aggregate partial results.
type GenerationResult struct {
	Success  bool            `json:"success"`
	Files    []GeneratedFile `json:"files"`
	Errors   []string        `json:"errors,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}
