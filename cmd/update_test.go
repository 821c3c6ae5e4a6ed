package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/subcommands"

	tracker "github.com/shazib/mftracker"
)

// A feed outage must not fail the run: the previously saved figures stay
// in place and the exit status is success.
func TestUpdateCmd_FeedOutageKeepsStaleData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("MFT_FEED_URL", srv.URL)
	t.Setenv("MFT_FETCH_RETRIES", "1")

	dir := t.TempDir()
	if status := runCmd(t, dir, &addCmd{}, "-u", "100", "-a", "4500", "-d", "10-May-2024", "120754"); status != subcommands.ExitSuccess {
		t.Fatalf("add status = %v", status)
	}

	if status := runCmd(t, dir, &updateCmd{}, "-nosync"); status != subcommands.ExitSuccess {
		t.Fatalf("update status = %v, want success despite the outage", status)
	}

	tr, err := tracker.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n := tr.PendingOrders("120754"); n != 1 {
		t.Errorf("pending orders = %d, want 1 (nothing reconciled)", n)
	}
	if tr.Inv.LastUpdated != "" {
		t.Errorf("lastUpdated = %q, want empty (no successful update)", tr.Inv.LastUpdated)
	}
}
