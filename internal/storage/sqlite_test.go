package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("sweeper", 42); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("sweeper")
	if err != nil {
		t.Fatal(err)
	}
	if high != 42 {
		t.Errorf("HighScore() = %d after reopen, expected 42", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("sweeper", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sweeper", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(TopScores()) = %d, expected 3", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not set", i)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		store.SaveScore("sweeper", (i+1)*10) //nolint:errcheck
	}

	scores, err := store.TopScores("sweeper", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 || scores[0].Score != 150 || scores[2].Score != 130 {
		t.Errorf("TopScores(3) = %v, expected 150, 140, 130", scores)
	}

	scores, err = store.TopScores("sweeper", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 10 {
		t.Errorf("TopScores(0) returned %d, expected default of 10", len(scores))
	}

	all, err := store.AllScores("sweeper")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 15 {
		t.Errorf("AllScores() returned %d, expected 15", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("sweeper")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for empty game, expected 0", high)
	}

	store.SaveScore("sweeper", 100) //nolint:errcheck
	store.SaveScore("sweeper", 300) //nolint:errcheck
	store.SaveScore("sweeper", 200) //nolint:errcheck

	high, err = store.HighScore("sweeper")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	rounds := []Round{
		{GameID: "sweeper", Variant: "easy", Won: true, Revealed: 71, Cells: 81, Mines: 10, Ticks: 900},
		{GameID: "sweeper", Variant: "easy", Won: false, Revealed: 12, Cells: 81, Mines: 10, Ticks: 120},
		{GameID: "sweeper", Variant: "classic", Won: false, Revealed: 300, Cells: 576, Mines: 16, Ticks: 4000},
		{GameID: "other", Variant: "easy", Won: true},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds("sweeper", 0)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(RecentRounds()) = %d, expected 3", len(recent))
	}
	if recent[0].Variant != "classic" || recent[0].Revealed != 300 || recent[0].Ticks != 4000 {
		t.Errorf("newest round = %+v", recent[0])
	}
	if !recent[2].Won || recent[2].Mines != 10 {
		t.Errorf("oldest round = %+v, expected the won easy round", recent[2])
	}

	stats, err := store.RoundStatsByVariant("sweeper")
	if err != nil {
		t.Fatalf("RoundStatsByVariant() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, expected 2", len(stats))
	}
	if stats[0].Variant != "classic" || stats[0].Played != 1 || stats[0].Won != 0 {
		t.Errorf("classic stats = %+v", stats[0])
	}
	if stats[1].Variant != "easy" || stats[1].Played != 2 || stats[1].Won != 1 || stats[1].BestReveals != 71 {
		t.Errorf("easy stats = %+v", stats[1])
	}
	if stats[1].WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, expected 0.5", stats[1].WinRate())
	}
	if (RoundStats{}).WinRate() != 0 {
		t.Error("WinRate() of no rounds should be 0")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("sweeper", 100)                            //nolint:errcheck
	store.SaveScore("other", 300)                              //nolint:errcheck
	store.SaveRound(Round{GameID: "sweeper", Variant: "easy"}) //nolint:errcheck

	if err := store.ClearScores("sweeper"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("sweeper", 10); len(scores) != 0 {
		t.Errorf("expected 0 scores after clear, got %d", len(scores))
	}
	if rounds, _ := store.RecentRounds("sweeper", 10); len(rounds) != 0 {
		t.Errorf("expected 0 rounds after clear, got %d", len(rounds))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other games should not be affected by clearing sweeper")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("sweeper")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("sweeper", 10) //nolint:errcheck
	store.SaveScore("sweeper", 30) //nolint:errcheck

	stats, err = store.GetGameStats("sweeper")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}
