package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/menucatch/pkg/formatting"
)

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    prediction
		wantErr bool
	}{
		{"bare", `{"label":"음료류","score":0.9}`, prediction{"음료류", 0.9}, false},
		{"padded", "  \n{\"label\":\"빵류\",\"score\":0.4}\n ", prediction{"빵류", 0.4}, false},
		{"json fence", "```json\n{\"label\":\"면류\",\"score\":0.7}\n```", prediction{"면류", 0.7}, false},
		{"plain fence", "```\n{\"label\":\"밥류\",\"score\":0.5}\n```", prediction{"밥류", 0.5}, false},
		{"fence in prose", "Result:\n```json\n{\"label\":\"디저트류\",\"score\":0.2}\n```\nDone.", prediction{"디저트류", 0.2}, false},
		{"object in prose", `The answer is {"label":"음료류","score":1} based on the text.`, prediction{"음료류", 1}, false},
		{"no json", "not json at all", prediction{}, true},
		{"empty", "", prediction{}, true},
		{"broken fence", "```json\n{broken\n```", prediction{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[prediction](tt.content)
			if tt.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Errorf("error = %v, want ErrParseFailed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSlice(t *testing.T) {
	got, err := formatting.Parse[[]string](`["음료류","빵류"]`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[1] != "빵류" {
		t.Errorf("got = %v", got)
	}
}
