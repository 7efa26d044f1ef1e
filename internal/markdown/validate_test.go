package markdown

import "testing"

func TestValidateAcceptsWellFormedMarkdown(t *testing.T) {
	content := []byte("## 第 1 页\n\nhello world\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n")
	if !Validate(content) {
		t.Fatalf("expected well-formed markdown to validate")
	}
}

func TestValidateAcceptsEmptyContent(t *testing.T) {
	if !Validate(nil) {
		t.Fatalf("expected empty content to validate trivially")
	}
}
