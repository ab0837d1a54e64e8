package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := DataLoad("failed to open file", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if GetCode(err) != CodeDataLoad {
		t.Errorf("expected %s, got %s", CodeDataLoad, GetCode(err))
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := MissingColumn("region_comparator", "Region")
	wrapped := fmt.Errorf("stage failed: %w", err)

	if !HasCode(wrapped, CodeMissingColumn) {
		t.Error("HasCode should unwrap to find the code")
	}
	if HasCode(wrapped, CodeDataLoad) {
		t.Error("HasCode must not match a different code")
	}
}

func TestErrorMessageIncludesCode(t *testing.T) {
	err := EmptyColumn("IncidentCases")
	msg := err.Error()
	if msg == "" || GetCode(err) != CodeEmptyColumn {
		t.Errorf("unexpected error: %q", msg)
	}
}
