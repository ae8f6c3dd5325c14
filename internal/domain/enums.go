package domain

// CardStatus is the derived lifecycle state of a card at a given instant.
type CardStatus string

const (
	CardStatusNew       CardStatus = "NEW"
	CardStatusWaiting   CardStatus = "WAITING"
	CardStatusAvailable CardStatus = "AVAILABLE"
	CardStatusOverdue   CardStatus = "OVERDUE"
	CardStatusFrozen    CardStatus = "FROZEN"
	CardStatusMastered  CardStatus = "MASTERED"
)

func (s CardStatus) String() string { return string(s) }

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusNew, CardStatusWaiting, CardStatusAvailable,
		CardStatusOverdue, CardStatusFrozen, CardStatusMastered:
		return true
	}
	return false
}

// ItemKind identifies the kind of content a card reviews.
type ItemKind string

const (
	ItemKindVocabulary ItemKind = "VOCABULARY"
	ItemKindIdiom      ItemKind = "IDIOM"
	ItemKindPhrase     ItemKind = "PHRASE"
	ItemKindGrammar    ItemKind = "GRAMMAR"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindVocabulary, ItemKindIdiom, ItemKindPhrase, ItemKindGrammar:
		return true
	}
	return false
}
