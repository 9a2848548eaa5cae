package cli

import "testing"

func TestFlags_ToConfigFlags(t *testing.T) {
	f := &Flags{
		ProjectPath: "/work",
		Workers:     8,
		Input:       "run.log",
		NameFilter:  "*adds*",
		GroupByFile: false,
		ErrorsOnly:  true,
		Resolve:     true,
	}

	t.Run("unchanged booleans are not marked as set", func(t *testing.T) {
		cf := f.ToConfigFlags(nil)
		if cf.ProjectPath != "/work" || cf.Workers != 8 || cf.Input != "run.log" || cf.NameFilter != "*adds*" {
			t.Errorf("unexpected flags: %+v", cf)
		}
		if cf.GroupByFileSet || cf.ErrorsOnlySet || cf.ResolveSet {
			t.Errorf("expected no *Set fields, got %+v", cf)
		}
	})

	t.Run("changed booleans are marked as set", func(t *testing.T) {
		cf := f.ToConfigFlags(func(name string) bool { return name == "group-by-file" || name == "errors-only" })
		if !cf.GroupByFileSet || cf.GroupByFile {
			t.Errorf("expected group-by-file set to false, got %+v", cf)
		}
		if !cf.ErrorsOnlySet || !cf.ErrorsOnly {
			t.Errorf("expected errors-only set to true, got %+v", cf)
		}
		if cf.ResolveSet {
			t.Error("resolve was not changed")
		}
	})
}
