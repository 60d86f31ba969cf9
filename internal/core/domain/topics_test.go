package domain

import (
	"testing"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     []string
	}{
		{
			name:     "rag keyword",
			filename: "Advanced-RAG-Techniques.pdf",
			want:     []string{"RAG"},
		},
		{
			name:     "retrieval keyword maps to RAG",
			filename: "retrieval-systems.md",
			want:     []string{"RAG"},
		},
		{
			name:     "multiple matches in declaration order",
			filename: "vector-database-cache.pdf",
			want:     []string{"Vector DB", "Database", "Caching"},
		},
		{
			name:     "no match falls back to General",
			filename: "quarterly-report.pdf",
			want:     []string{"General"},
		},
		{
			name:     "case insensitive",
			filename: "CQRS-And-Events.PDF",
			want:     []string{"CQRS", "Event-Driven"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.filename)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("topic %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
