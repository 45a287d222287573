// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/formulary/internal/auth"
	"github.com/taibuivan/formulary/internal/core/formula"
	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/sec"
)

const publicBase = "https://cdn.example.com/public/formula-visuals/"

var errRemote = errors.New("remote unavailable")

// pngBytes starts with the PNG signature so content sniffing sees image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Journal

// journal records remote calls in order across fakes.
type journal struct {
	calls []string
}

func (j *journal) add(call string) {
	j.calls = append(j.calls, call)
}

// # Record Store

type memoryRepo struct {
	journal *journal
	rows    map[int64]formula.Row
	nextID  int64

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
	imageErr  error
}

func newMemoryRepo(j *journal) *memoryRepo {
	return &memoryRepo{journal: j, rows: map[int64]formula.Row{}, nextID: 1}
}

func (repo *memoryRepo) seed(entry formula.Formula) int64 {
	id := repo.nextID
	repo.nextID++
	row := formula.ToRow(formula.PatchOf(entry))
	row["id"] = id
	row["created_at"] = time.Date(2026, 1, int(id), 0, 0, 0, 0, time.UTC)
	repo.rows[id] = row
	return id
}

func (repo *memoryRepo) List(context.Context) ([]formula.Row, error) {
	repo.journal.add("repo.List")
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	result := make([]formula.Row, 0, len(repo.rows))
	for id := repo.nextID - 1; id > 0; id-- {
		if row, ok := repo.rows[id]; ok {
			result = append(result, maps.Clone(row))
		}
	}
	return result, nil
}

func (repo *memoryRepo) Get(_ context.Context, id int64) (formula.Row, error) {
	repo.journal.add("repo.Get")
	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Formula")
	}
	return maps.Clone(row), nil
}

func (repo *memoryRepo) Insert(_ context.Context, row formula.Row) (formula.Row, error) {
	repo.journal.add("repo.Insert")
	if repo.insertErr != nil {
		return nil, repo.insertErr
	}
	stored := maps.Clone(row)
	stored["id"] = repo.nextID
	stored["created_at"] = time.Now().UTC()
	repo.rows[repo.nextID] = stored
	repo.nextID++
	return maps.Clone(stored), nil
}

func (repo *memoryRepo) Update(_ context.Context, id int64, row formula.Row) (formula.Row, error) {
	repo.journal.add("repo.Update")
	if repo.updateErr != nil {
		return nil, repo.updateErr
	}
	stored, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Formula")
	}
	maps.Copy(stored, row)
	return maps.Clone(stored), nil
}

func (repo *memoryRepo) Delete(_ context.Context, id int64) error {
	repo.journal.add("repo.Delete")
	if repo.deleteErr != nil {
		return repo.deleteErr
	}
	if _, ok := repo.rows[id]; !ok {
		return apperr.NotFound("Formula")
	}
	delete(repo.rows, id)
	return nil
}

func (repo *memoryRepo) ImageURL(_ context.Context, id int64) (string, error) {
	repo.journal.add("repo.ImageURL")
	if repo.imageErr != nil {
		return "", repo.imageErr
	}
	row, ok := repo.rows[id]
	if !ok {
		return "", apperr.NotFound("Formula")
	}
	url, _ := row["image_url"].(string)
	return url, nil
}

// # Object Store

type mockObjects struct {
	mock.Mock
	journal *journal
}

func (m *mockObjects) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	m.journal.add("objects.Upload")
	return m.Called(ctx, path, data, contentType).Error(0)
}

func (m *mockObjects) Delete(ctx context.Context, paths ...string) error {
	m.journal.add("objects.Delete")
	return m.Called(ctx, paths).Error(0)
}

func (m *mockObjects) PublicURL(path string) string {
	return publicBase + path
}

func (m *mockObjects) PathFromURL(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, publicBase)
	return path, ok && path != ""
}

// # Session Gate

type mockGate struct {
	mock.Mock
}

func (m *mockGate) CurrentSession(ctx context.Context) (*auth.Session, error) {
	args := m.Called(ctx)
	session, _ := args.Get(0).(*auth.Session)
	return session, args.Error(1)
}

func adminSession() *auth.Session {
	return &auth.Session{ID: "session-1", AccountID: "account-1", Role: sec.RoleAdmin}
}

// # Fixtures

type harness struct {
	journal *journal
	repo    *memoryRepo
	objects *mockObjects
	gate    *mockGate
	service *formula.Service
}

func newHarness() *harness {
	j := &journal{}
	h := &harness{
		journal: j,
		repo:    newMemoryRepo(j),
		objects: &mockObjects{journal: j},
		gate:    &mockGate{},
	}
	h.gate.On("CurrentSession", mock.Anything).Return(adminSession(), nil)
	h.service = formula.NewService(h.repo, h.objects, h.gate, discardLogger())
	return h
}

func sampleFormula() formula.Formula {
	return formula.Formula{
		Title:            formula.LocalizedText{EN: "XLOOKUP Function", MY: "XLOOKUP ဖန်ရှင်"},
		Category:         formula.LocalizedText{EN: "Lookup", MY: "ရှာဖွေခြင်း"},
		ShortDescription: formula.LocalizedText{EN: "Searches a range", MY: "အကွာအဝေးကို ရှာသည်"},
		LongDescription: formula.LocalizedParagraphs{
			EN: []string{"First paragraph.", "Second paragraph."},
			MY: []string{"ပထမ အပိုဒ်။"},
		},
		Syntax:             "=XLOOKUP(lookup_value, lookup_array, return_array)",
		Example:            "=XLOOKUP(A2, B:B, C:C)",
		ExampleExplanation: formula.LocalizedText{EN: "Finds A2 in column B", MY: "B ကော်လံတွင် A2 ကို ရှာသည်"},
	}
}
