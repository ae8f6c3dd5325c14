package domain

// WrongAnswer records what the learner got wrong when a card was created
// from a missed answer. Each item kind carries its own payload shape.
type WrongAnswer interface {
	Kind() ItemKind
	isWrongAnswer()
}

// VocabularyWrongAnswer is the missed-answer payload of a vocabulary card.
type VocabularyWrongAnswer struct {
	Prompt   string `json:"prompt"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
}

func (VocabularyWrongAnswer) Kind() ItemKind { return ItemKindVocabulary }
func (VocabularyWrongAnswer) isWrongAnswer() {}

// IdiomWrongAnswer is the missed-answer payload of an idiom or phrase card.
type IdiomWrongAnswer struct {
	Expression string   `json:"expression"`
	Meaning    string   `json:"meaning"`
	Chosen     string   `json:"chosen"`
	Options    []string `json:"options,omitempty"`
}

func (IdiomWrongAnswer) Kind() ItemKind { return ItemKindIdiom }
func (IdiomWrongAnswer) isWrongAnswer() {}

// GrammarWrongAnswer is the missed-answer payload of a grammar card.
type GrammarWrongAnswer struct {
	Sentence string `json:"sentence"`
	Blank    int    `json:"blank"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
	RuleRef  string `json:"rule_ref,omitempty"`
}

func (GrammarWrongAnswer) Kind() ItemKind { return ItemKindGrammar }
func (GrammarWrongAnswer) isWrongAnswer() {}
