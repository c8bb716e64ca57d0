package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestSendExtractSummary(t *testing.T) {
	m := NewMock(&MailConfig{Sender: "dfam-cds@example.com"})

	summary := ExtractSummary{
		Clade:      "9606",
		Relatives:  "both",
		Families:   1313,
		CodingSeqs: 412,
		FastaPath:  "coding_seqs.faa",
		TablePath:  "coding_seqs.tsv",
		Finished:   time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}

	if err := m.SendFromTemplate("alice@example.com", ExtractSummaryTemplate, summary); err != nil {
		t.Fatal(err)
	}

	messages := m.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected %d message, got %d", 1, len(messages))
	}

	for _, expected := range []string{
		"To: alice@example.com",
		"From: dfam-cds@example.com",
		"412 coding sequences extracted for clade 9606",
		"coding_seqs.tsv",
		"2026-10-16 12:00:00 UTC",
	} {
		if !strings.Contains(messages[0], expected) {
			t.Errorf("Expected message to contain %q", expected)
		}
	}
}

func TestSendUnknownTemplate(t *testing.T) {
	m := NewMock(&MailConfig{Sender: "dfam-cds@example.com"})
	if err := m.SendFromTemplate("alice@example.com", "missing.tmpl", nil); err == nil {
		t.Error("Expected an error for a missing template, got nil")
	}
}
