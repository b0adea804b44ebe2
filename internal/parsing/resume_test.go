package parsing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResume_MinimalResume(t *testing.T) {
	raw := "Jane Doe\nEmail: jane@x.com\nSkills: React, Node.js"

	parsed := ExtractResume(raw)

	assert.Equal(t, "Jane Doe", parsed.Name)
	assert.Equal(t, "jane@x.com", parsed.Email)
	assert.Equal(t, types.NotSpecified, parsed.Phone)
	assert.Equal(t, []string{"React", "Node.js"}, parsed.Skills)
	assert.Equal(t, []string{types.RolesNotParsed}, parsed.Roles)
	assert.Equal(t, raw, parsed.RawContent)
}

func TestExtractResume_Empty(t *testing.T) {
	parsed := ExtractResume("")

	assert.Equal(t, types.NotSpecified, parsed.Name)
	assert.Equal(t, types.NotSpecified, parsed.Email)
	assert.Equal(t, types.NotSpecified, parsed.Phone)
	assert.Empty(t, parsed.Skills)
	assert.Equal(t, []string{types.RolesNotParsed}, parsed.Roles)
	assert.Equal(t, types.EducationNotSpecified, parsed.Education)
}

func TestExtractResume_Idempotent(t *testing.T) {
	raw := "Vijay Hosapeti\nFrontend Developer — React, Vite, Tailwind.\nPhone: +91 98765 43210\nSkills: React, JavaScript, HTML"
	assert.Equal(t, ExtractResume(raw), ExtractResume(raw))
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"first line", "Jane Doe\nEngineer", "Jane Doe"},
		{"skips email line", "jane@x.com\nJane Doe", "Jane Doe"},
		{"skips blank lines", "\n\n   \nJane Doe", "Jane Doe"},
		{"trims surrounding whitespace", "   Jane Doe   \n", "Jane Doe"},
		{"rejects digits", "Jane Doe 2\nEngineer 3\nx1", types.NotSpecified},
		{"rejects dotted initials", "J. Doe\n555 1234", types.NotSpecified},
		{"only first three lines", "a@b\nc@d\ne@f\nJane Doe", types.NotSpecified},
		{"rejects long line", strings.Repeat("a", 50), types.NotSpecified},
		{"accepts 49 characters", strings.Repeat("a", 49), strings.Repeat("a", 49)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.raw))
		})
	}
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "first.last+cv@mail.example.org", ExtractEmail("Contact: first.last+cv@mail.example.org or phone"))
	assert.Equal(t, types.NotSpecified, ExtractEmail("no address here @ all"))
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"international", "Phone: +1 (555) 123-4567\nSkills: Go", "+1 (555) 123-4567"},
		{"plain digits", "Call 5551234567 today", "5551234567"},
		{"too short", "Call 555-1234", types.NotSpecified},
		{"none", "Jane Doe", types.NotSpecified},
		{"blank line run before number", "Jane Doe" + strings.Repeat("\n", 11) + "Phone: 555-123-4567", "555-123-4567"},
		{"only blank line runs", "Jane Doe" + strings.Repeat("\n", 11) + "Skills: Go", types.NotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.raw))
		})
	}
}

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "labelled line",
			raw:  "Skills: React, Node.js, Go",
			want: []string{"React", "Node.js", "Go"},
		},
		{
			name: "singular label without colon",
			raw:  "Skill Python Docker",
			want: []string{"Python", "Docker"},
		},
		{
			name: "drops single character tokens",
			raw:  "Skills: C, Go, R, Rust",
			want: []string{"Go", "Rust"},
		},
		{
			name: "technologies label",
			raw:  "Technologies: Vue, Express",
			want: []string{"Vue", "Express"},
		},
		{
			name: "programming label",
			raw:  "Programming: Java Kotlin",
			want: []string{"Java", "Kotlin"},
		},
		{
			name: "skills label wins over technologies",
			raw:  "Technologies: Vue\nSkills: Go",
			want: []string{"Go"},
		},
		{
			name: "fallback vocabulary",
			raw:  "Built apps with react and python",
			want: []string{"React", "Python"},
		},
		{
			name: "no skills at all",
			raw:  "Gardening enthusiast",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.raw))
		})
	}
}

func TestExtractSkills_Caps(t *testing.T) {
	var toks []string
	for i := 0; i < 14; i++ {
		toks = append(toks, fmt.Sprintf("tool%d", i))
	}
	skills := ExtractSkills("Skills: " + strings.Join(toks, ", "))
	require.Len(t, skills, 10)
	assert.Equal(t, "tool0", skills[0])
	assert.Equal(t, "tool9", skills[9])

	fallback := ExtractSkills("react javascript html css node.js python")
	assert.Equal(t, []string{"React", "JavaScript", "HTML", "CSS", "Node.js"}, fallback)
}

func TestExtractRoles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "em dash and hyphen lines",
			raw:  "Jane\nFrontend Developer — Acme\nBackend Engineer - Initech\nshort-one",
			want: []string{"Frontend Developer — Acme", "Backend Engineer - Initech"},
		},
		{
			name: "en dash",
			raw:  "  Lead Engineer – Globex  ",
			want: []string{"Lead Engineer – Globex"},
		},
		{
			name: "caps at three",
			raw:  "Role one - Company\nRole two - Company\nRole three - Company\nRole four - Company",
			want: []string{"Role one - Company", "Role two - Company", "Role three - Company"},
		},
		{
			name: "too long",
			raw:  strings.Repeat("x", 95) + " - abc",
			want: []string{types.RolesNotParsed},
		},
		{
			name: "no dashes",
			raw:  "Senior Engineer at Acme\nJunior Engineer at Initech",
			want: []string{types.RolesNotParsed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRoles(tt.raw))
		})
	}
}

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "labelled line keeps label",
			raw:  "Jane\nEducation: B.E. in Engineering — Acharya Institute of Technology\nSkills: Go",
			want: "Education: B.E. in Engineering — Acharya Institute of Technology",
		},
		{
			name: "degree keyword",
			raw:  "Jane\nPhD in Physics, 2019",
			want: "PhD in Physics, 2019",
		},
		{
			name: "nothing recognisable",
			raw:  "Jude\nTokyo",
			want: types.EducationNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEducation(tt.raw))
		})
	}
}
