package services

import (
	"regexp"
	"strings"

	"github.com/vasudha-connect/kinshipbackend/models"
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// stripTags removes anything that looks like an HTML tag from submitted
// free text. Profile fields are rendered verbatim by the frontends.
func stripTags(text string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(text, ""))
}

func stripTagsPtr(text *string) *string {
	if text == nil {
		return nil
	}
	cleaned := stripTags(*text)
	return &cleaned
}

// sanitizePerson strips tags from every free-text field of a person draft,
// in place.
func sanitizePerson(p *models.Person) {
	p.Name = stripTags(p.Name)
	p.Surname = stripTags(p.Surname)
	p.MaidenName = stripTags(p.MaidenName)
	p.Family = stripTagsPtr(p.Family)
	p.Description = stripTagsPtr(p.Description)
	p.FatherName = stripTagsPtr(p.FatherName)
	p.MotherName = stripTagsPtr(p.MotherName)
	p.SpouseName = stripTagsPtr(p.SpouseName)
}
