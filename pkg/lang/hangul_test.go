package lang

import "testing"

func TestContainsHangul(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"pure ascii", "What is the capital of France?", false},
		{"empty", "", false},
		{"korean syllables", "안녕하세요", true},
		{"mixed korean and english", "summarize this: 문서를 요약하세요", true},
		{"compatibility jamo", "ㄱㄴㄷ", true},
		{"other cjk is not hangul", "日本語のテキスト", false},
		{"digits and punctuation", "12345 !?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsHangul(tt.input); got != tt.want {
				t.Errorf("ContainsHangul(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
