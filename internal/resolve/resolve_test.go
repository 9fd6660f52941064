package resolve_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/menucatch/internal/resolve"
)

func catalogIndex() *resolve.Index {
	return resolve.NewIndex(map[string][]string{
		"음료류":  {"아메리카노", "카페라떼"},
		"디저트류": {"초코케이크"},
	})
}

func TestResolveSpacedFragment(t *testing.T) {
	ranked := resolve.RankedCategories{"음료류", "디저트류"}

	result := resolve.Resolve("아메 리카노", ranked, catalogIndex())

	if !result.Matched() {
		t.Fatal("expected a winner, got none")
	}
	if result.Winner.Name != "아메리카노" {
		t.Errorf("winner name: got %s, want 아메리카노", result.Winner.Name)
	}
	if result.Winner.Category != "음료류" {
		t.Errorf("winner category: got %s, want 음료류", result.Winner.Category)
	}
	if result.Winner.Score != 1 {
		t.Errorf("winner score: got %v, want 1", result.Winner.Score)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("candidates: got %d, want 1", len(result.Candidates))
	}
	if result.Candidates[0].Name != "아메리카노" {
		t.Errorf("candidate: got %s, want 아메리카노", result.Candidates[0].Name)
	}
}

func TestResolveUnknownCategories(t *testing.T) {
	ranked := resolve.RankedCategories{"면류", "밥류"}

	result := resolve.Resolve("없는음식", ranked, catalogIndex())

	if result.Matched() {
		t.Errorf("expected no winner, got %+v", result.Winner)
	}
	if result.Candidates == nil || len(result.Candidates) != 0 {
		t.Errorf("candidates: got %v, want empty list", result.Candidates)
	}
}

func TestResolveEmptyRanking(t *testing.T) {
	result := resolve.Resolve("아메리카노", resolve.RankedCategories{}, catalogIndex())

	if result.Matched() {
		t.Errorf("expected no winner, got %+v", result.Winner)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("candidates: got %d, want 0", len(result.Candidates))
	}
}

func TestResolveNilIndex(t *testing.T) {
	result := resolve.Resolve("아메리카노", resolve.RankedCategories{"음료류"}, nil)

	if result.Matched() {
		t.Errorf("expected no winner, got %+v", result.Winner)
	}
}

func TestResolveSkipsMissingCategory(t *testing.T) {
	ranked := resolve.RankedCategories{"면류", "디저트류"}

	result := resolve.Resolve("초코 케이크", ranked, catalogIndex())

	if !result.Matched() {
		t.Fatal("expected a winner, got none")
	}
	if result.Winner.Category != "디저트류" {
		t.Errorf("winner category: got %s, want 디저트류", result.Winner.Category)
	}
	if result.Winner.Rank != 1 {
		t.Errorf("winner rank: got %d, want 1", result.Winner.Rank)
	}
}

func TestResolveTieBreaks(t *testing.T) {
	tests := []struct {
		name         string
		index        map[string][]string
		ranked       resolve.RankedCategories
		fragment     string
		wantName     string
		wantCategory string
	}{
		{
			name: "earlier category rank wins equal scores",
			index: map[string][]string{
				"음료류": {"아메리카노"},
				"커피류": {"아메리카노"},
			},
			ranked:       resolve.RankedCategories{"커피류", "음료류"},
			fragment:     "아메리카노",
			wantName:     "아메리카노",
			wantCategory: "커피류",
		},
		{
			name: "earlier position wins equal scores",
			index: map[string][]string{
				"분식류": {"가나", "거너"},
			},
			ranked:       resolve.RankedCategories{"분식류"},
			fragment:     "고노",
			wantName:     "가나",
			wantCategory: "분식류",
		},
		{
			name: "higher score beats earlier position",
			index: map[string][]string{
				"음료류": {"아미리카노", "아메리카노"},
			},
			ranked:       resolve.RankedCategories{"음료류"},
			fragment:     "아메리카노",
			wantName:     "아메리카노",
			wantCategory: "음료류",
		},
		{
			name: "higher score beats earlier category",
			index: map[string][]string{
				"음료류": {"아미리카노"},
				"커피류": {"아메리카노"},
			},
			ranked:       resolve.RankedCategories{"음료류", "커피류"},
			fragment:     "아메리카노",
			wantName:     "아메리카노",
			wantCategory: "커피류",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolve.Resolve(tt.fragment, tt.ranked, resolve.NewIndex(tt.index))

			if !result.Matched() {
				t.Fatal("expected a winner, got none")
			}
			if result.Winner.Name != tt.wantName {
				t.Errorf("winner name: got %s, want %s", result.Winner.Name, tt.wantName)
			}
			if result.Winner.Category != tt.wantCategory {
				t.Errorf("winner category: got %s, want %s", result.Winner.Category, tt.wantCategory)
			}
		})
	}
}

func TestResolveWinnerIsCandidate(t *testing.T) {
	index := resolve.NewIndex(map[string][]string{
		"음료류": {"아미리카노", "아메리카노", "카페라떼"},
		"커피류": {"아메리카노", "에스프레소"},
	})
	ranked := resolve.RankedCategories{"음료류", "커피류"}

	result := resolve.Resolve("아매리카노", ranked, index)

	if !result.Matched() {
		t.Fatal("expected a winner, got none")
	}

	found := false
	for _, c := range result.Candidates {
		if c == *result.Winner {
			found = true
		}
	}
	if !found {
		t.Errorf("winner %+v not in candidates %+v", result.Winner, result.Candidates)
	}

	wantOrder := []string{"음료류/아미리카노", "음료류/아메리카노", "커피류/아메리카노"}
	if len(result.Candidates) != len(wantOrder) {
		t.Fatalf("candidates: got %d, want %d", len(result.Candidates), len(wantOrder))
	}
	for i, c := range result.Candidates {
		if got := c.Category + "/" + c.Name; got != wantOrder[i] {
			t.Errorf("candidate[%d]: got %s, want %s", i, got, wantOrder[i])
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	index := resolve.NewIndex(map[string][]string{
		"음료류": {"아미리카노", "아메리카노", "카페라떼"},
		"커피류": {"아메리카노", "에스프레소"},
	})
	ranked := resolve.RankedCategories{"커피류", "음료류"}

	first := resolve.Resolve("아매 리카노", ranked, index)
	second := resolve.Resolve("아매 리카노", ranked, index)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveDespacedFragment(t *testing.T) {
	index := catalogIndex()
	ranked := resolve.RankedCategories{"음료류", "디저트류"}

	spaced := resolve.Resolve("카페 라 떼", ranked, index)
	despaced := resolve.Resolve("카페라떼", ranked, index)

	if !reflect.DeepEqual(spaced.Candidates, despaced.Candidates) {
		t.Errorf("candidates differ:\nspaced:   %+v\ndespaced: %+v", spaced.Candidates, despaced.Candidates)
	}
}

func TestBuildCandidates(t *testing.T) {
	index := resolve.NewIndex(map[string][]string{
		"음료류":  {"아메리카노", "카페라떼", "아몬드라떼"},
		"디저트류": {"초코케이크"},
	})
	ranked := resolve.RankedCategories{"디저트류", "없는류", "음료류"}

	set := resolve.BuildCandidates("아메리카노", ranked, index)

	if len(set) != 1 {
		t.Fatalf("categories: got %d, want 1", len(set))
	}
	if set[0].Category != "음료류" {
		t.Errorf("category: got %s, want 음료류", set[0].Category)
	}
	if set[0].Rank != 2 {
		t.Errorf("rank: got %d, want 2", set[0].Rank)
	}
	if got := set.Names("음료류"); len(got) != 1 || got[0] != "아메리카노" {
		t.Errorf("names: got %v, want [아메리카노]", got)
	}
	if set.Len() != 1 {
		t.Errorf("len: got %d, want 1", set.Len())
	}

	other := resolve.BuildCandidates("초코케이크", ranked, index)
	if set.Names("디저트류") != nil {
		t.Error("candidate sets share state across fragments")
	}
	if other.Len() != 1 {
		t.Errorf("len: got %d, want 1", other.Len())
	}
}
