package students

import (
	"testing"

	"scolapay/app/models"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  models.Gender
	}{
		{input: "male", want: models.Male},
		{input: "female", want: models.Female},
		{input: "other", want: models.Other},
		{input: "", want: ""},
		{input: "MALE", want: ""},
		{input: "unknown", want: ""},
	}
	for _, tt := range tests {
		if got := parseGender(tt.input); got != tt.want {
			t.Errorf("parseGender(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStudentPayloadToModelGender(t *testing.T) {
	p := studentPayload{
		Matricule:     "MAT-001",
		FirstName:     "Aminata",
		LastName:      "Diallo",
		Gender:        "female",
		InstitutionID: "6f1c2b51-9a77-4a43-8a20-3b1be94d7f10",
	}
	if got := p.toModel().Gender; got != models.Female {
		t.Errorf("toModel().Gender = %q, want %q", got, models.Female)
	}
}

func TestStudentPayloadValidation(t *testing.T) {
	base := studentPayload{
		Matricule:     "MAT-001",
		FirstName:     "Aminata",
		LastName:      "Diallo",
		InstitutionID: "6f1c2b51-9a77-4a43-8a20-3b1be94d7f10",
	}

	tests := []struct {
		name    string
		mutate  func(p *studentPayload)
		wantErr bool
	}{
		{name: "valid minimal", mutate: func(p *studentPayload) {}},
		{name: "valid with gender", mutate: func(p *studentPayload) { p.Gender = "male" }},
		{name: "bad gender", mutate: func(p *studentPayload) { p.Gender = "m" }, wantErr: true},
		{name: "missing matricule", mutate: func(p *studentPayload) { p.Matricule = "" }, wantErr: true},
		{name: "bad institution id", mutate: func(p *studentPayload) { p.InstitutionID = "42" }, wantErr: true},
		{name: "bad birth date", mutate: func(p *studentPayload) { p.BirthDate = "10/01/2010" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := validate.Struct(&p)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate.Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
