package cli

import "vtcopy/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Workers     int
	Command     string
	Input       string
	Output      string
	Filter      string
	NameFilter  string
	TestRoot    string
	Template    string
	Run         bool
	Stdout      bool
	JSON        bool
	FailFast    bool
	TestFiles   bool
	TestCases   bool
	Verbose     bool
	GroupByFile bool
	ErrorsOnly  bool
	Resolve     bool
}

// Changed reports whether a flag was set on the command line.
type Changed func(name string) bool

// ToConfigFlags converts CLI flags to config flags. Boolean settings that also
// live in the config file only override it when changed reports them as set.
func (f *Flags) ToConfigFlags(changed Changed) config.Flags {
	if changed == nil {
		changed = func(string) bool { return false }
	}
	return config.Flags{
		ProjectPath:    f.ProjectPath,
		Workers:        f.Workers,
		Command:        f.Command,
		Input:          f.Input,
		Output:         f.Output,
		Filter:         f.Filter,
		NameFilter:     f.NameFilter,
		TestRoot:       f.TestRoot,
		Template:       f.Template,
		Run:            f.Run,
		Stdout:         f.Stdout,
		JSON:           f.JSON,
		FailFast:       f.FailFast,
		TestFiles:      f.TestFiles,
		TestCases:      f.TestCases,
		Verbose:        f.Verbose,
		GroupByFile:    f.GroupByFile,
		GroupByFileSet: changed("group-by-file"),
		ErrorsOnly:     f.ErrorsOnly,
		ErrorsOnlySet:  changed("errors-only"),
		Resolve:        f.Resolve,
		ResolveSet:     changed("resolve"),
	}
}
