package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasudha-connect/kinshipbackend/kinship"
	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
)

type FamilyHandler struct {
	Repo repository.PersonRepositoryInterface
}

// labeledRelative is one relative rendered with their honorific, plus their
// spouse when the spouse carries a derived honorific of their own.
type labeledRelative struct {
	Person      models.Person  `json:"person"`
	Label       string         `json:"label"`
	Spouse      *models.Person `json:"spouse,omitempty"`
	SpouseLabel string         `json:"spouseLabel,omitempty"`
}

type familyResponse struct {
	Person *models.Person      `json:"person"`
	Family *kinship.FamilyView `json:"family"`

	Father      *labeledRelative `json:"fatherCard,omitempty"`
	Mother      *labeledRelative `json:"motherCard,omitempty"`
	FatherInLaw *labeledRelative `json:"fatherInLawCard,omitempty"`
	MotherInLaw *labeledRelative `json:"motherInLawCard,omitempty"`

	PaternalGrandfather *labeledRelative `json:"paternalGrandfatherCard,omitempty"`
	PaternalGrandmother *labeledRelative `json:"paternalGrandmotherCard,omitempty"`
	MaternalGrandfather *labeledRelative `json:"maternalGrandfatherCard,omitempty"`
	MaternalGrandmother *labeledRelative `json:"maternalGrandmotherCard,omitempty"`

	Siblings        []labeledRelative `json:"siblingCards"`
	Children        []labeledRelative `json:"childCards"`
	PaternalUncles  []labeledRelative `json:"paternalUncleCards"`
	PaternalAunts   []labeledRelative `json:"paternalAuntCards"`
	MaternalUncles  []labeledRelative `json:"maternalUncleCards"`
	MaternalAunts   []labeledRelative `json:"maternalAuntCards"`
	HusbandBrothers []labeledRelative `json:"husbandBrotherCards"`
	HusbandSisters  []labeledRelative `json:"husbandSisterCards"`
	WifeBrothers    []labeledRelative `json:"wifeBrotherCards"`
	WifeSisters     []labeledRelative `json:"wifeSisterCards"`
}

// GetFamily loads all people into a snapshot and derives the full
// relationship view, with every relative labeled by their honorific.
func (fh *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")

	people, err := fh.Repo.ListAll()
	if err != nil {
		log.Printf("Error loading people for family view: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve people")
		return
	}

	snapshot, err := kinship.NewSnapshot(people)
	if err != nil {
		log.Printf("Error building snapshot: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", err.Error())
		return
	}

	focal := snapshot.Get(id)
	if focal == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		return
	}

	view := kinship.BuildFamilyView(snapshot, focal)
	writeJSON(w, http.StatusOK, buildFamilyResponse(snapshot, focal, view))
}

func buildFamilyResponse(s *kinship.Snapshot, focal *models.Person, view *kinship.FamilyView) *familyResponse {
	resp := &familyResponse{
		Person:          focal,
		Family:          view,
		Siblings:        []labeledRelative{},
		Children:        []labeledRelative{},
		PaternalUncles:  []labeledRelative{},
		PaternalAunts:   []labeledRelative{},
		MaternalUncles:  []labeledRelative{},
		MaternalAunts:   []labeledRelative{},
		HusbandBrothers: []labeledRelative{},
		HusbandSisters:  []labeledRelative{},
		WifeBrothers:    []labeledRelative{},
		WifeSisters:     []labeledRelative{},
	}

	resp.Father = fixedCard(view.Father, kinship.LabelFather)
	resp.Mother = fixedCard(view.Mother, kinship.LabelMother)
	resp.FatherInLaw = fixedCard(view.FatherInLaw, kinship.LabelFatherInLaw)
	resp.MotherInLaw = fixedCard(view.MotherInLaw, kinship.LabelMotherInLaw)
	resp.PaternalGrandfather = fixedCard(view.PaternalGrandfather, kinship.LabelPaternalGF)
	resp.PaternalGrandmother = fixedCard(view.PaternalGrandmother, kinship.LabelPaternalGM)
	resp.MaternalGrandfather = fixedCard(view.MaternalGrandfather, kinship.LabelMaternalGF)
	resp.MaternalGrandmother = fixedCard(view.MaternalGrandmother, kinship.LabelMaternalGM)

	for i := range view.Siblings {
		sibling := &view.Siblings[i]
		card := labeledRelative{Person: *sibling, Label: kinship.SiblingLabel(sibling)}
		if spouse := s.Spouse(sibling); spouse != nil {
			card.Spouse = spouse
			card.SpouseLabel = kinship.SiblingSpouseLabel(focal, sibling)
		}
		resp.Siblings = append(resp.Siblings, card)
	}

	for i := range view.Children {
		child := &view.Children[i]
		card := labeledRelative{Person: *child, Label: kinship.ChildLabel(child)}
		if spouse := s.Spouse(child); spouse != nil {
			card.Spouse = spouse
			card.SpouseLabel = kinship.ChildSpouseLabel(child)
		}
		resp.Children = append(resp.Children, card)
	}

	for i := range view.PaternalUncles {
		uncle := &view.PaternalUncles[i]
		uncleLabel, wifeLabel := kinship.PaternalUncleLabels(view.Father, uncle)
		resp.PaternalUncles = append(resp.PaternalUncles, pairedCard(s, uncle, uncleLabel, wifeLabel))
	}
	for i := range view.PaternalAunts {
		aunt := &view.PaternalAunts[i]
		resp.PaternalAunts = append(resp.PaternalAunts, pairedCard(s, aunt, kinship.LabelPaternalAunt, kinship.LabelPaternalAuntHusband))
	}
	for i := range view.MaternalUncles {
		uncle := &view.MaternalUncles[i]
		resp.MaternalUncles = append(resp.MaternalUncles, pairedCard(s, uncle, kinship.LabelMaternalUncle, kinship.LabelMaternalUncleWife))
	}
	for i := range view.MaternalAunts {
		aunt := &view.MaternalAunts[i]
		resp.MaternalAunts = append(resp.MaternalAunts, pairedCard(s, aunt, kinship.LabelMaternalAunt, kinship.LabelMaternalAuntHusband))
	}

	for i := range view.HusbandBrothers {
		brother := &view.HusbandBrothers[i]
		brotherLabel, wifeLabel := kinship.HusbandBrotherLabels(view.Spouse, brother)
		resp.HusbandBrothers = append(resp.HusbandBrothers, pairedCard(s, brother, brotherLabel, wifeLabel))
	}
	for i := range view.HusbandSisters {
		sister := &view.HusbandSisters[i]
		resp.HusbandSisters = append(resp.HusbandSisters, pairedCard(s, sister, kinship.LabelHusbandSister, kinship.LabelHusbandSisterHusband))
	}
	for i := range view.WifeBrothers {
		brother := &view.WifeBrothers[i]
		resp.WifeBrothers = append(resp.WifeBrothers, pairedCard(s, brother, kinship.LabelWifeBrother, ""))
	}
	for i := range view.WifeSisters {
		sister := &view.WifeSisters[i]
		resp.WifeSisters = append(resp.WifeSisters, pairedCard(s, sister, kinship.LabelWifeSister, ""))
	}

	return resp
}

func fixedCard(person *models.Person, label string) *labeledRelative {
	if person == nil {
		return nil
	}
	return &labeledRelative{Person: *person, Label: label}
}

func pairedCard(s *kinship.Snapshot, person *models.Person, label, spouseLabel string) labeledRelative {
	card := labeledRelative{Person: *person, Label: label}
	if spouse := s.Spouse(person); spouse != nil {
		card.Spouse = spouse
		if spouseLabel != "" {
			card.SpouseLabel = spouseLabel
		}
	}
	return card
}
