package flags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddTechSearchFlags(t *testing.T) {
	var f CommonFlags
	cmd := &cobra.Command{Use: "search"}
	AddTechSearchFlags(cmd, &f)

	if f.ByTechnology {
		t.Fatal("Expected ByTechnology to default to false")
	}
	if err := cmd.Flags().Set("by-technology", "true"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}
	if !f.ByTechnology {
		t.Error("Expected by-technology flag to bind to ByTechnology")
	}
}

func TestAddSearchFlags(t *testing.T) {
	var f CommonFlags
	cmd := &cobra.Command{Use: "search"}
	AddSearchFlags(cmd, &f)

	if f.Field != "all" {
		t.Fatalf("Expected default field %q, got %q", "all", f.Field)
	}
	if err := cmd.Flags().Set("field", "username"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}
	if f.Field != "username" {
		t.Errorf("Expected field flag to bind to Field, got %q", f.Field)
	}
}
