package kinship

import "github.com/vasudha-connect/kinshipbackend/models"

// Grandparents groups the four grandparent slots of a person. Any slot may be
// nil; an absent parent short-circuits the lookup for that side.
type Grandparents struct {
	PaternalGrandfather *models.Person `json:"paternalGrandfather,omitempty"`
	PaternalGrandmother *models.Person `json:"paternalGrandmother,omitempty"`
	MaternalGrandfather *models.Person `json:"maternalGrandfather,omitempty"`
	MaternalGrandmother *models.Person `json:"maternalGrandmother,omitempty"`
}

// InLaws holds the relatives derived through a person's spouse: the spouse's
// parents and the spouse's siblings partitioned by gender.
type InLaws struct {
	FatherInLaw *models.Person  `json:"fatherInLaw,omitempty"`
	MotherInLaw *models.Person  `json:"motherInLaw,omitempty"`
	Brothers    []models.Person `json:"brothers"`
	Sisters     []models.Person `json:"sisters"`
}

// Parents resolves the father and mother links of a person. A missing or
// unregistered parent resolves to nil.
func (s *Snapshot) Parents(p *models.Person) (father, mother *models.Person) {
	if p == nil {
		return nil, nil
	}
	return s.FindByID(p.FatherID), s.FindByID(p.MotherID)
}

// Grandparents composes Parents twice, once through the father and once
// through the mother.
func (s *Snapshot) Grandparents(p *models.Person) Grandparents {
	var g Grandparents
	father, mother := s.Parents(p)
	if father != nil {
		g.PaternalGrandfather = s.FindByID(father.FatherID)
		g.PaternalGrandmother = s.FindByID(father.MotherID)
	}
	if mother != nil {
		g.MaternalGrandfather = s.FindByID(mother.FatherID)
		g.MaternalGrandmother = s.FindByID(mother.MotherID)
	}
	return g
}

// Spouse resolves the spouse link of a person, or nil when unlinked.
func (s *Snapshot) Spouse(p *models.Person) *models.Person {
	if p == nil {
		return nil
	}
	return s.FindByID(p.SpouseID)
}

// Children returns every person that lists parentID as father or mother. The
// result is unordered; callers impose seniority order where it matters.
func (s *Snapshot) Children(parentID string) []models.Person {
	children := []models.Person{}
	if parentID == "" {
		return children
	}
	for _, candidate := range s.people {
		if refEquals(candidate.FatherID, parentID) || refEquals(candidate.MotherID, parentID) {
			children = append(children, candidate)
		}
	}
	return children
}

// Siblings returns every other person sharing the focal person's father or
// mother link. The OR match deliberately includes half-siblings. A person
// with neither parent link has no resolvable siblings and gets an empty
// result, not an error.
func (s *Snapshot) Siblings(p *models.Person) []models.Person {
	siblings := []models.Person{}
	if p == nil || (p.FatherID == nil && p.MotherID == nil) {
		return siblings
	}
	for _, candidate := range s.people {
		if candidate.ID == p.ID {
			continue
		}
		sharesFather := p.FatherID != nil && refEquals(candidate.FatherID, *p.FatherID)
		sharesMother := p.MotherID != nil && refEquals(candidate.MotherID, *p.MotherID)
		if sharesFather || sharesMother {
			siblings = append(siblings, candidate)
		}
	}
	return siblings
}

// AuntsUncles partitions the children of a grandparent, minus the already
// known parent, into uncles (male) and aunts (female).
func (s *Snapshot) AuntsUncles(grandparentID, excludeParentID string) (uncles, aunts []models.Person) {
	uncles = []models.Person{}
	aunts = []models.Person{}
	for _, child := range s.Children(grandparentID) {
		if child.ID == excludeParentID {
			continue
		}
		switch child.Gender {
		case models.GenderMale:
			uncles = append(uncles, child)
		case models.GenderFemale:
			aunts = append(aunts, child)
		}
	}
	return uncles, aunts
}

// InLaws derives the in-law set through a spouse: the spouse's parents become
// father- and mother-in-law, and the spouse's siblings are split into
// brothers and sisters. A nil spouse yields an empty set.
func (s *Snapshot) InLaws(spouse *models.Person) InLaws {
	inLaws := InLaws{Brothers: []models.Person{}, Sisters: []models.Person{}}
	if spouse == nil {
		return inLaws
	}
	inLaws.FatherInLaw, inLaws.MotherInLaw = s.Parents(spouse)
	for _, sibling := range s.Siblings(spouse) {
		switch sibling.Gender {
		case models.GenderMale:
			inLaws.Brothers = append(inLaws.Brothers, sibling)
		case models.GenderFemale:
			inLaws.Sisters = append(inLaws.Sisters, sibling)
		}
	}
	return inLaws
}

func refEquals(ref *string, id string) bool {
	return ref != nil && *ref == id
}
