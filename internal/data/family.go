package data

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type FamilySummary struct {
	Accession         string           `json:"accession"`
	Name              string           `json:"name,omitempty"`
	Title             string           `json:"title,omitempty"`
	Description       string           `json:"description,omitempty"`
	Length            int              `json:"length,omitempty"`
	Classification    string           `json:"classification,omitempty"`
	RepeatTypeName    string           `json:"repeat_type_name,omitempty"`
	RepeatSubtypeName Optional[string] `json:"repeat_subtype_name,omitzero"`
}

type SearchResult struct {
	TotalCount int             `json:"total_count"`
	Results    []FamilySummary `json:"results"`
}

// Truncated reports whether the server matched more families than it returned.
func (r *SearchResult) Truncated() bool {
	return r.TotalCount > len(r.Results)
}

type FamilyRecord struct {
	Accession         string           `json:"accession"`
	Name              string           `json:"name"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Length            int              `json:"length"`
	Classification    string           `json:"classification"`
	RepeatTypeName    string           `json:"repeat_type_name"`
	RepeatSubtypeName Optional[string] `json:"repeat_subtype_name,omitzero"`
	Clades            []TaxonID        `json:"clades,omitempty"`
	CodingSeqs        []CodingSequence `json:"coding_seqs,omitempty"`
}

func (f *FamilyRecord) Summary() FamilySummary {
	return FamilySummary{
		Accession:         f.Accession,
		Name:              f.Name,
		Title:             f.Title,
		Description:       f.Description,
		Length:            f.Length,
		Classification:    f.Classification,
		RepeatTypeName:    f.RepeatTypeName,
		RepeatSubtypeName: f.RepeatSubtypeName,
	}
}

// InClade reports whether clade is one of the record's clades.
func (f *FamilyRecord) InClade(clade string) bool {
	for _, c := range f.Clades {
		if string(c) == clade {
			return true
		}
	}
	return false
}

// TaxonID is a clade identifier. Dfam emits these as numbers, but names are
// accepted too.
type TaxonID string

func (t *TaxonID) UnmarshalJSON(bs []byte) error {
	bs = bytes.TrimSpace(bs)
	if len(bs) > 0 && bs[0] == '"' {
		var s string
		if err := json.Unmarshal(bs, &s); err != nil {
			return err
		}
		*t = TaxonID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(bs, &n); err != nil {
		return err
	}
	*t = TaxonID(n.String())
	return nil
}

// MarshalJSON writes canonical integers back as numbers and everything else,
// including forms like "007" or "+5", as strings.
func (t TaxonID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(t), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(t) {
		return []byte(t), nil
	}
	return json.Marshal(string(t))
}

type CodingSequence struct {
	Product           Optional[string]  `json:"product,omitzero"`
	Translation       Optional[string]  `json:"translation,omitzero"`
	ProteinType       Optional[string]  `json:"protein_type,omitzero"`
	Start             Optional[int]     `json:"start,omitzero"`
	End               Optional[int]     `json:"end,omitzero"`
	ExonCount         Optional[int]     `json:"exon_count,omitzero"`
	ExonStarts        Optional[[]int]   `json:"exon_starts,omitzero"`
	ExonEnds          Optional[[]int]   `json:"exon_ends,omitzero"`
	ExternalReference Optional[string]  `json:"external_reference,omitzero"`
	Reverse           Optional[bool]    `json:"reverse,omitzero"`
	StopCodons        Optional[int]     `json:"stop_codons,omitzero"`
	Frameshifts       Optional[int]     `json:"frameshifts,omitzero"`
	Gaps              Optional[int]     `json:"gaps,omitzero"`
	PercentIdentity   Optional[float64] `json:"percent_identity,omitzero"`
	LeftUnaligned     Optional[int]     `json:"left_unaligned,omitzero"`
	RightUnaligned    Optional[int]     `json:"right_unaligned,omitzero"`
	AlignData         Optional[string]  `json:"align_data,omitzero"`
	ClassificationId  Optional[int]     `json:"classification_id,omitzero"`
	Description       Optional[string]  `json:"description,omitzero"`
}

// AnnotationColumns are the per coding sequence columns of the coding
// sequence table, after product name and accession.
var AnnotationColumns = []string{
	"protein_type", "start", "end", "exon_count", "exon_starts", "exon_ends",
	"external_reference", "reverse", "stop_codons", "frameshifts", "gaps", "percent_identity",
	"left_unaligned", "right_unaligned",
	"align_data", "classification_id", "description",
}

// Annotation returns the field backing one of AnnotationColumns.
func (cs *CodingSequence) Annotation(column string) (Field, bool) {
	switch column {
	case "protein_type":
		return cs.ProteinType, true
	case "start":
		return cs.Start, true
	case "end":
		return cs.End, true
	case "exon_count":
		return cs.ExonCount, true
	case "exon_starts":
		return cs.ExonStarts, true
	case "exon_ends":
		return cs.ExonEnds, true
	case "external_reference":
		return cs.ExternalReference, true
	case "reverse":
		return cs.Reverse, true
	case "stop_codons":
		return cs.StopCodons, true
	case "frameshifts":
		return cs.Frameshifts, true
	case "gaps":
		return cs.Gaps, true
	case "percent_identity":
		return cs.PercentIdentity, true
	case "left_unaligned":
		return cs.LeftUnaligned, true
	case "right_unaligned":
		return cs.RightUnaligned, true
	case "align_data":
		return cs.AlignData, true
	case "classification_id":
		return cs.ClassificationId, true
	case "description":
		return cs.Description, true
	}
	return nil, false
}
