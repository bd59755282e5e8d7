package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/repositories"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// Test-only in-memory fakes implementing the repository and media
// interfaces, with error fields for behavior injection.

type fakeAccountStore struct {
	nextID   int64
	accounts map[int64]*models.Account

	createErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{nextID: 1, accounts: make(map[int64]*models.Account)}
}

func (f *fakeAccountStore) Create(_ context.Context, account *models.Account) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return 0, repositories.ErrUsernameTaken
		}
	}
	account.ID = f.nextID
	f.nextID++
	cp := *account
	f.accounts[account.ID] = &cp
	return account.ID, nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAccountStore) UpdateCredentials(_ context.Context, id int64, username, passwordHash string) error {
	for otherID, a := range f.accounts {
		if otherID != id && a.Username == username {
			return repositories.ErrUsernameTaken
		}
	}
	a, ok := f.accounts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Username = username
	a.PasswordHash = passwordHash
	return nil
}

type fakeCourseStore struct {
	nextID  int64
	courses map[int64]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{nextID: 1, courses: make(map[int64]*models.Course)}
}

func (f *fakeCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = f.nextID
	f.nextID++
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) (*models.Course, error) {
	if _, ok := f.courses[course.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *course
	f.courses[course.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	delete(f.courses, id)
	return nil
}

type fakeMaterialStore struct {
	nextID    int64
	materials map[int64]*models.CourseMaterial

	createErr error
}

func newFakeMaterialStore() *fakeMaterialStore {
	return &fakeMaterialStore{nextID: 1, materials: make(map[int64]*models.CourseMaterial)}
}

func (f *fakeMaterialStore) Create(_ context.Context, material *models.CourseMaterial) error {
	if f.createErr != nil {
		return f.createErr
	}
	material.ID = f.nextID
	f.nextID++
	cp := *material
	f.materials[material.ID] = &cp
	return nil
}

func (f *fakeMaterialStore) GetByID(_ context.Context, id int64) (*models.CourseMaterial, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMaterialStore) GetByCourse(_ context.Context, courseID int64) ([]*models.CourseMaterial, error) {
	out := make([]*models.CourseMaterial, 0)
	for _, m := range f.materials {
		if m.CourseID == courseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeMaterialStore) Delete(_ context.Context, id int64) error {
	delete(f.materials, id)
	return nil
}

type fakePublicationStore struct {
	nextID       int64
	publications map[int64]*models.Publication

	createErr error
}

func newFakePublicationStore() *fakePublicationStore {
	return &fakePublicationStore{nextID: 1, publications: make(map[int64]*models.Publication)}
}

func (f *fakePublicationStore) GetAll(_ context.Context) ([]*models.Publication, error) {
	out := make([]*models.Publication, 0, len(f.publications))
	for _, p := range f.publications {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakePublicationStore) GetByID(_ context.Context, id int64) (*models.Publication, error) {
	p, ok := f.publications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePublicationStore) Create(_ context.Context, pub *models.Publication) error {
	if f.createErr != nil {
		return f.createErr
	}
	pub.ID = f.nextID
	f.nextID++
	cp := *pub
	f.publications[pub.ID] = &cp
	return nil
}

func (f *fakePublicationStore) Update(_ context.Context, pub *models.Publication) (*models.Publication, error) {
	existing, ok := f.publications[pub.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	pdf := existing.PdfURL
	cp := *pub
	cp.PdfURL = pdf
	f.publications[pub.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePublicationStore) UpdatePdfURL(_ context.Context, id int64, pdfURL string) (*string, error) {
	p, ok := f.publications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	old := p.PdfURL
	p.PdfURL = &pdfURL
	return old, nil
}

func (f *fakePublicationStore) Delete(_ context.Context, id int64) error {
	delete(f.publications, id)
	return nil
}

type fakeTalkStore struct {
	nextID int64
	talks  map[int64]*models.Talk
}

func newFakeTalkStore() *fakeTalkStore {
	return &fakeTalkStore{nextID: 1, talks: make(map[int64]*models.Talk)}
}

func (f *fakeTalkStore) GetAll(_ context.Context) ([]*models.Talk, error) {
	out := make([]*models.Talk, 0, len(f.talks))
	for _, t := range f.talks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (f *fakeTalkStore) GetByID(_ context.Context, id int64) (*models.Talk, error) {
	t, ok := f.talks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTalkStore) Create(_ context.Context, talk *models.Talk) error {
	talk.ID = f.nextID
	f.nextID++
	cp := *talk
	f.talks[talk.ID] = &cp
	return nil
}

func (f *fakeTalkStore) Update(_ context.Context, talk *models.Talk) (*models.Talk, error) {
	existing, ok := f.talks[talk.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	flyer := existing.FlyerURL
	cp := *talk
	cp.FlyerURL = flyer
	f.talks[talk.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTalkStore) UpdateFlyerURL(_ context.Context, id int64, flyerURL string) (*string, error) {
	t, ok := f.talks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	old := t.FlyerURL
	t.FlyerURL = &flyerURL
	return old, nil
}

func (f *fakeTalkStore) Delete(_ context.Context, id int64) error {
	delete(f.talks, id)
	return nil
}

type fakeProfileStore struct {
	profile *models.Profile
}

func (f *fakeProfileStore) Get(_ context.Context) (*models.Profile, error) {
	if f.profile == nil {
		f.profile = &models.Profile{
			ID:          1,
			DisplayName: "Your Name",
			Title:       "Your Title",
			Contact:     models.Contact{Email: "email@example.com"},
		}
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeProfileStore) Update(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	var photo *string
	if f.profile != nil {
		photo = f.profile.PhotoURL
	}
	cp := *profile
	cp.ID = 1
	cp.PhotoURL = photo
	f.profile = &cp
	out := cp
	return &out, nil
}

func (f *fakeProfileStore) UpdatePhotoURL(_ context.Context, photoURL string) (*string, error) {
	if f.profile == nil {
		f.profile = &models.Profile{ID: 1, PhotoURL: &photoURL}
		return nil, nil
	}
	old := f.profile.PhotoURL
	f.profile.PhotoURL = &photoURL
	return old, nil
}

// fakeUploader fabricates media host URLs without touching a bucket.
type fakeUploader struct {
	uploads  []string
	storeErr error
}

func (f *fakeUploader) Store(_ context.Context, fileHeader *multipart.FileHeader, folder string, _ upload.Limits) (*upload.Result, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	url := fmt.Sprintf("https://media.example.com/%s/%d-%s", folder, len(f.uploads), fileHeader.Filename)
	f.uploads = append(f.uploads, url)
	return &upload.Result{
		URL:          url,
		ContentType:  "application/octet-stream",
		Kind:         mediastore.KindRaw,
		Size:         fileHeader.Size,
		OriginalName: fileHeader.Filename,
	}, nil
}

// fakeMedia records deletions and serves canned fetches.
type fakeMedia struct {
	deleted  []string
	objects  map[string]*mediastore.Object
	fetchErr error
}

func (f *fakeMedia) Fetch(_ context.Context, publicURL string) (*mediastore.Object, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if obj, ok := f.objects[publicURL]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("object not found: %s", publicURL)
}

func (f *fakeMedia) Delete(_ context.Context, publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return nil
}
