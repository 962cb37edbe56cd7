package repository_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"rental/config"
	"rental/infras/flatfile"
	"rental/infras/otel/mocks"
	"rental/shared/failure"
	"rental/shared/record"
	"rental/shared/repository"
)

type account struct {
	ID       string
	Username string
	Balance  float64
}

func encodeAccount(a account) string {
	return record.Join(record.DelimiterComma,
		a.ID,
		record.Clean(record.DelimiterComma, a.Username),
		record.FormatFloat(a.Balance),
	)
}

func decodeAccount(line string) (account, error) {
	fields, err := record.Split(line, record.DelimiterComma, 3)
	if err != nil {
		return account{}, err
	}

	decoded := account{
		ID:       fields.Get(0),
		Username: fields.Get(1),
		Balance:  fields.Float(2),
	}

	if err := fields.Err(); err != nil {
		return account{}, err
	}

	return decoded, nil
}

func newTestStore(t *testing.T) (*repository.Store[account], string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Data.Dir = t.TempDir()

	dir := flatfile.NewDir(cfg)
	file := dir.File("accounts.txt")

	store := repository.NewStore(
		"account",
		file,
		encodeAccount,
		decodeAccount,
		func(a account) string { return a.ID },
		[]repository.UniqueKey[account]{
			{Name: "username", Value: func(a account) string { return a.Username }},
		},
		mocks.NewOtel(),
	)

	return store, filepath.Join(cfg.Data.Dir, "accounts.txt")
}

func TestStoreAppendAndLoadAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := account{ID: "id-1", Username: "budi", Balance: 100}
	second := account{ID: "id-2", Username: "sari", Balance: 250}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append first: %v", err)
	}

	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("LoadAll returned %d records, want 2", len(records))
	}

	if records[0] != first || records[1] != second {
		t.Errorf("LoadAll = %+v, want file order [%+v %+v]", records, first, second)
	}
}

func TestStoreAppendRejectsDuplicates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, account{ID: "id-1", Username: "budi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	err := store.Append(ctx, account{ID: "id-1", Username: "other"})
	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("duplicate id error = %v, want conflict", err)
	}

	err = store.Append(ctx, account{ID: "id-2", Username: "budi"})
	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("duplicate username error = %v, want conflict", err)
	}
}

func TestStoreFindByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	stored := account{ID: "id-1", Username: "budi", Balance: 100}
	if err := store.Append(ctx, stored); err != nil {
		t.Fatalf("Append: %v", err)
	}

	found, ok, err := store.FindByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	if !ok || found != stored {
		t.Errorf("FindByID = %+v, %v; want %+v, true", found, ok, stored)
	}

	_, ok, err = store.FindByID(ctx, "missing")
	if err != nil {
		t.Fatalf("FindByID missing: %v", err)
	}

	if ok {
		t.Error("FindByID found a record for an unknown id")
	}
}

func TestStoreUpdateRewritesFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, account{ID: "id-1", Username: "budi", Balance: 100}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.Append(ctx, account{ID: "id-2", Username: "sari", Balance: 250}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	updated := account{ID: "id-1", Username: "budi", Balance: 175}
	if err := store.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(records) != 2 || records[0] != updated {
		t.Errorf("after update LoadAll = %+v, want updated record first", records)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(contents) != "id-1,budi,175\nid-2,sari,250\n" {
		t.Errorf("file contents = %q", contents)
	}
}

func TestStoreUpdateUnknownRecord(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Update(context.Background(), account{ID: "missing", Username: "budi"})
	if failure.GetCode(err) != http.StatusNotFound {
		t.Errorf("Update missing = %v, want not found", err)
	}
}

func TestStoreUpdateRejectsStolenUniqueKey(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, account{ID: "id-1", Username: "budi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.Append(ctx, account{ID: "id-2", Username: "sari"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	err := store.Update(ctx, account{ID: "id-2", Username: "budi"})
	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("Update stealing username = %v, want conflict", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, account{ID: "id-1", Username: "budi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("after delete LoadAll = %+v, want empty", records)
	}

	err = store.Delete(ctx, "id-1")
	if failure.GetCode(err) != http.StatusNotFound {
		t.Errorf("Delete missing = %v, want not found", err)
	}
}

func TestStoreSkipsMalformedLines(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	lines := "id-1,budi,100\ngarbage line\nid-2,sari,not-a-number\nid-3,tono,50\n"
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("LoadAll returned %d records, want the 2 parseable ones", len(records))
	}

	if records[0].ID != "id-1" || records[1].ID != "id-3" {
		t.Errorf("LoadAll = %+v, want id-1 and id-3", records)
	}
}

func TestStoreReplaceAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, account{ID: "id-1", Username: "budi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	replacement := []account{
		{ID: "id-9", Username: "wati", Balance: 10},
	}

	if err := store.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(records) != 1 || records[0].ID != "id-9" {
		t.Errorf("after ReplaceAll LoadAll = %+v, want only id-9", records)
	}
}
