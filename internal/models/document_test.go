package models

import (
	"testing"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expect   SortKey
	}{
		{
			name:     "date prefix before underscore",
			fileName: "20251031_minutes.pdf",
			expect:   SortKey{Rank: RankNumeric, Num: 20251031},
		},
		{
			name:     "numeric prefix before hyphen",
			fileName: "7-appendix.pdf",
			expect:   SortKey{Rank: RankNumeric, Num: 7},
		},
		{
			name:     "whole stem numeric without separator",
			fileName: "20251114.pdf",
			expect:   SortKey{Rank: RankNumeric, Num: 20251114},
		},
		{
			name:     "first separator wins",
			fileName: "12-03_report.pdf",
			expect:   SortKey{Rank: RankNumeric, Num: 12},
		},
		{
			name:     "alpha prefix lowercased",
			fileName: "Minutes_2025.pdf",
			expect:   SortKey{Rank: RankAlpha, Text: "minutes"},
		},
		{
			name:     "letter followed by digits still ranks alpha",
			fileName: "v2_draft.pdf",
			expect:   SortKey{Rank: RankAlpha, Text: "v2"},
		},
		{
			name:     "digit followed by letters ranks other",
			fileName: "2b_scan.pdf",
			expect:   SortKey{Rank: RankOther, Text: "2b"},
		},
		{
			name:     "leading separator yields empty prefix",
			fileName: "_draft.pdf",
			expect:   SortKey{Rank: RankOther, Text: ""},
		},
		{
			name:     "punctuation prefix ranks other",
			fileName: "#index_v1.pdf",
			expect:   SortKey{Rank: RankOther, Text: "#index"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSortKey(tt.fileName)
			if got != tt.expect {
				t.Errorf("ParseSortKey(%q) = %+v, want %+v", tt.fileName, got, tt.expect)
			}
		})
	}
}

func TestSortDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name: "numeric before alpha before other",
			input: []string{
				"b_doc.pdf",
				"20250102_report.pdf",
				"a-notes.pdf",
				"_draft.pdf",
				"9_summary.pdf",
			},
			want: []string{
				"9_summary.pdf",
				"20250102_report.pdf",
				"a-notes.pdf",
				"b_doc.pdf",
				"_draft.pdf",
			},
		},
		{
			name: "dated scans sort before lettered reports",
			input: []string{
				"20251101_a.pdf",
				"B_report.pdf",
				"20251031.pdf",
				"misc.pdf",
			},
			want: []string{
				"20251031.pdf",
				"20251101_a.pdf",
				"B_report.pdf",
				"misc.pdf",
			},
		},
		{
			name: "numeric prefixes compare as numbers not strings",
			input: []string{
				"20250102_x.pdf",
				"9_x.pdf",
				"100_x.pdf",
			},
			want: []string{
				"9_x.pdf",
				"100_x.pdf",
				"20250102_x.pdf",
			},
		},
		{
			name: "alpha prefixes compare case insensitively",
			input: []string{
				"Beta_2.pdf",
				"alpha_1.pdf",
				"GAMMA_3.pdf",
			},
			want: []string{
				"alpha_1.pdf",
				"Beta_2.pdf",
				"GAMMA_3.pdf",
			},
		},
		{
			name: "equal keys fall back to name",
			input: []string{
				"a_second.pdf",
				"A_first.pdf",
			},
			want: []string{
				"A_first.pdf",
				"a_second.pdf",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := make([]Document, len(tt.input))
			for i, name := range tt.input {
				docs[i] = NewDocument("/input/" + name)
			}

			SortDocuments(docs)

			for i, want := range tt.want {
				if docs[i].Name != want {
					t.Errorf("position %d = %q, want %q", i, docs[i].Name, want)
				}
			}
		})
	}
}

func TestDocumentOutputName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		suffix   string
		want     string
	}{
		{
			name:     "default suffix",
			fileName: "20251031_minutes.pdf",
			suffix:   "_numbered",
			want:     "20251031_minutes_numbered.pdf",
		},
		{
			name:     "stem with dots keeps inner dots",
			fileName: "report.v2.pdf",
			suffix:   "_numbered",
			want:     "report.v2_numbered.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument("/input/" + tt.fileName)
			if got := d.OutputName(tt.suffix); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}
