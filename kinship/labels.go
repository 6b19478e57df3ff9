package kinship

import "github.com/vasudha-connect/kinshipbackend/models"

// Kinship honorifics in the community's own terms. Several of them depend on
// relative age, which is why the three-valued seniority comparison exists:
// when the order is unknown both candidate terms are shown joined by a slash.

// SiblingLabel returns the term for a sibling of the focal person.
func SiblingLabel(sibling *models.Person) string {
	if sibling.Gender == models.GenderMale {
		return "Bhai"
	}
	return "Ben"
}

// SiblingSpouseLabel returns the term for a sibling's spouse. A brother's
// wife is addressed differently depending on whether the focal man is the
// elder or the younger of the two brothers.
func SiblingSpouseLabel(focal, sibling *models.Person) string {
	if sibling.Gender != models.GenderMale {
		return "Banevi"
	}
	if focal.Gender != models.GenderMale {
		return "Bhabhi"
	}
	switch older := IsPerson1Older(focal, sibling); {
	case older == nil:
		return "Bhabhi/Putravadhu"
	case *older:
		return "Putravadhu"
	default:
		return "Bhabhi"
	}
}

// ChildLabel returns the term for a child, and ChildSpouseLabel the term for
// that child's spouse.
func ChildLabel(child *models.Person) string {
	if child.Gender == models.GenderMale {
		return "Dikro"
	}
	return "Dikri"
}

func ChildSpouseLabel(child *models.Person) string {
	if child.Gender == models.GenderMale {
		return "Putra Vadhu"
	}
	return "Jamai"
}

// PaternalUncleLabels returns the terms for a paternal uncle and his wife.
// A father's elder brother carries the "Mota" prefix.
func PaternalUncleLabels(father, uncle *models.Person) (uncleLabel, wifeLabel string) {
	older := IsPerson1Older(father, uncle)
	if older != nil && !*older {
		return "Mota Kaka", "Mota Kaki"
	}
	return "Kaka", "Kaki"
}

// HusbandBrotherLabels returns the terms for a husband's brother and that
// brother's wife, split on whether the husband is the elder of the two.
func HusbandBrotherLabels(husband, brother *models.Person) (brotherLabel, wifeLabel string) {
	switch older := IsPerson1Older(husband, brother); {
	case older == nil:
		return "De-ar/Jeth", "Derani/Jethani"
	case *older:
		return "De-ar", "Derani"
	default:
		return "Jeth", "Jethani"
	}
}

// Fixed (age-independent) honorifics.
const (
	LabelFather      = "Pappa"
	LabelMother      = "Mummy"
	LabelPaternalGF  = "Dada"
	LabelPaternalGM  = "Dadi"
	LabelMaternalGF  = "Nana"
	LabelMaternalGM  = "Nani"
	LabelFatherInLaw = "Sasra"
	LabelMotherInLaw = "Sasu"

	LabelPaternalAunt        = "Foi"
	LabelPaternalAuntHusband = "Fua"
	LabelMaternalUncle       = "Mama"
	LabelMaternalUncleWife   = "Mami"
	LabelMaternalAunt        = "Masi"
	LabelMaternalAuntHusband = "Masa"

	LabelHusbandSister        = "Nanand"
	LabelHusbandSisterHusband = "Nandoi"
	LabelWifeSister           = "Sali"
	LabelWifeBrother          = "Salo"
)
