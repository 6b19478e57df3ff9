package kinship

import "github.com/vasudha-connect/kinshipbackend/models"

// FamilyView is the full derived relationship view for one focal person: the
// payload behind a profile page. Every list is seniority-sorted.
type FamilyView struct {
	Father *models.Person `json:"father,omitempty"`
	Mother *models.Person `json:"mother,omitempty"`
	Spouse *models.Person `json:"spouse,omitempty"`

	Grandparents

	Children []models.Person `json:"children"`
	Siblings []models.Person `json:"siblings"`

	PaternalUncles []models.Person `json:"paternalUncles"`
	PaternalAunts  []models.Person `json:"paternalAunts"`
	MaternalUncles []models.Person `json:"maternalUncles"`
	MaternalAunts  []models.Person `json:"maternalAunts"`

	HasPaternalUnclesOrAunts bool `json:"hasPaternalUnclesOrAunts"`
	HasMaternalUnclesOrAunts bool `json:"hasMaternalUnclesOrAunts"`

	FatherInLaw *models.Person `json:"fatherInLaw,omitempty"`
	MotherInLaw *models.Person `json:"motherInLaw,omitempty"`

	// Sibling-in-law lists depend on the focal person's gender: a wife sees
	// her husband's siblings, a husband sees his wife's.
	HusbandBrothers []models.Person `json:"husbandBrothers"`
	HusbandSisters  []models.Person `json:"husbandSisters"`
	WifeBrothers    []models.Person `json:"wifeBrothers"`
	WifeSisters     []models.Person `json:"wifeSisters"`
}

// BuildFamilyView assembles every derived relationship for the focal person
// from the snapshot. No lookup deeper than two hops (parent of parent) is
// needed for any relationship; absence at any level simply leaves the slot
// empty.
func BuildFamilyView(s *Snapshot, focal *models.Person) *FamilyView {
	view := &FamilyView{
		HusbandBrothers: []models.Person{},
		HusbandSisters:  []models.Person{},
		WifeBrothers:    []models.Person{},
		WifeSisters:     []models.Person{},
		PaternalUncles:  []models.Person{},
		PaternalAunts:   []models.Person{},
		MaternalUncles:  []models.Person{},
		MaternalAunts:   []models.Person{},
	}
	if focal == nil {
		view.Children = []models.Person{}
		view.Siblings = []models.Person{}
		return view
	}

	view.Father, view.Mother = s.Parents(focal)
	view.Spouse = s.Spouse(focal)
	view.Grandparents = s.Grandparents(focal)

	view.Children = s.Children(focal.ID)
	SortBySeniority(view.Children)

	view.Siblings = s.Siblings(focal)
	SortBySeniority(view.Siblings)

	if view.PaternalGrandfather != nil && view.Father != nil {
		view.PaternalUncles, view.PaternalAunts = s.AuntsUncles(view.PaternalGrandfather.ID, view.Father.ID)
		SortBySeniority(view.PaternalUncles)
		SortBySeniority(view.PaternalAunts)
	}
	if view.MaternalGrandfather != nil && view.Mother != nil {
		view.MaternalUncles, view.MaternalAunts = s.AuntsUncles(view.MaternalGrandfather.ID, view.Mother.ID)
		SortBySeniority(view.MaternalUncles)
		SortBySeniority(view.MaternalAunts)
	}
	view.HasPaternalUnclesOrAunts = len(view.PaternalUncles) > 0 || len(view.PaternalAunts) > 0
	view.HasMaternalUnclesOrAunts = len(view.MaternalUncles) > 0 || len(view.MaternalAunts) > 0

	if view.Spouse != nil {
		inLaws := s.InLaws(view.Spouse)
		view.FatherInLaw = inLaws.FatherInLaw
		view.MotherInLaw = inLaws.MotherInLaw
		SortBySeniority(inLaws.Brothers)
		SortBySeniority(inLaws.Sisters)
		switch focal.Gender {
		case models.GenderFemale:
			view.HusbandBrothers = inLaws.Brothers
			view.HusbandSisters = inLaws.Sisters
		case models.GenderMale:
			view.WifeBrothers = inLaws.Brothers
			view.WifeSisters = inLaws.Sisters
		}
	}

	return view
}
