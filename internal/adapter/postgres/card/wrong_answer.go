package card

import (
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// wrongAnswerEnvelope is the JSONB shape of cards.wrong_answer.
type wrongAnswerEnvelope struct {
	Kind domain.ItemKind `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func encodeWrongAnswer(a domain.WrongAnswer) ([]byte, error) {
	if a == nil {
		return nil, nil
	}

	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode wrong answer: %w", err)
	}
	return json.Marshal(wrongAnswerEnvelope{Kind: a.Kind(), Data: data})
}

func decodeWrongAnswer(raw []byte) (domain.WrongAnswer, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var env wrongAnswerEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode wrong answer: %w", err)
	}

	switch env.Kind {
	case domain.ItemKindVocabulary:
		var a domain.VocabularyWrongAnswer
		err := json.Unmarshal(env.Data, &a)
		return a, err
	case domain.ItemKindIdiom, domain.ItemKindPhrase:
		var a domain.IdiomWrongAnswer
		err := json.Unmarshal(env.Data, &a)
		return a, err
	case domain.ItemKindGrammar:
		var a domain.GrammarWrongAnswer
		err := json.Unmarshal(env.Data, &a)
		return a, err
	default:
		return nil, fmt.Errorf("decode wrong answer: unknown kind %q", env.Kind)
	}
}
