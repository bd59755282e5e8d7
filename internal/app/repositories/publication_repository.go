package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/pkg/logger"
)

const publicationColumns = "id, title, abstract, publication_type, year, journal, volume, issue, pages, doi, url, pdf_url, status, created_at, updated_at"

// PublicationRepository handles publication database operations. The author
// list lives in publication_authors and is replaced wholesale on update,
// with a position column preserving the submitted order.
type PublicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPublicationRepository creates a new PublicationRepository
func NewPublicationRepository(db *pgxpool.Pool) *PublicationRepository {
	return &PublicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every publication with authors loaded, most recent year
// first and newest entry first within a year.
func (r *PublicationRepository) GetAll(ctx context.Context) ([]*models.Publication, error) {
	sql, args, err := r.sb.Select(publicationColumns).
		From("publications").
		OrderBy("year DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list publications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list publications query")
		return nil, fmt.Errorf("error listing publications: %w", err)
	}
	defer rows.Close()

	publications := make([]*models.Publication, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		pub := &models.Publication{}
		if err := r.scanPublication(rows, pub); err != nil {
			return nil, fmt.Errorf("error scanning publication row: %w", err)
		}
		publications = append(publications, pub)
		ids = append(ids, pub.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publication rows: %w", err)
	}

	if len(publications) == 0 {
		return publications, nil
	}

	authorsByPub, err := r.loadAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, pub := range publications {
		pub.Authors = authorsByPub[pub.ID]
		if pub.Authors == nil {
			pub.Authors = []models.Author{}
		}
	}
	return publications, nil
}

// GetByID retrieves a publication with its authors.
func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	sql, args, err := r.sb.Select(publicationColumns).
		From("publications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get publication query: %w", err)
	}

	pub := &models.Publication{}
	err = r.scanPublication(r.db.QueryRow(ctx, sql, args...), pub)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("publicationID", id).Msg("Error scanning publication row")
		return nil, fmt.Errorf("error getting publication by id: %w", err)
	}

	authorsByPub, err := r.loadAuthors(ctx, []int64{pub.ID})
	if err != nil {
		return nil, err
	}
	pub.Authors = authorsByPub[pub.ID]
	if pub.Authors == nil {
		pub.Authors = []models.Author{}
	}
	return pub, nil
}

// Create inserts a publication and its author list in one transaction.
func (r *PublicationRepository) Create(ctx context.Context, pub *models.Publication) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("publications").
		Columns("title", "abstract", "publication_type", "year", "journal", "volume",
			"issue", "pages", "doi", "url", "pdf_url", "status").
		Values(pub.Title, pub.Abstract, pub.Type, pub.Year, pub.Journal, pub.Volume,
			pub.Issue, pub.Pages, pub.DOI, pub.URL, pub.PdfURL, pub.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create publication query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&pub.ID, &pub.CreatedAt, &pub.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", pub.Title).Msg("Error executing create publication query")
		return fmt.Errorf("error creating publication: %w", err)
	}

	if err := r.insertAuthors(ctx, tx, pub.ID, pub.Authors); err != nil {
		return err
	}
	for i := range pub.Authors {
		pub.Authors[i].PublicationID = pub.ID
		pub.Authors[i].Position = i
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing publication transaction: %w", err)
	}
	return nil
}

// Update replaces a publication's fields and its entire author list in one
// transaction. The stored pdf_url is untouched; it has its own endpoint.
func (r *PublicationRepository) Update(ctx context.Context, pub *models.Publication) (*models.Publication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Update("publications").
		SetMap(map[string]interface{}{
			"title":            pub.Title,
			"abstract":         pub.Abstract,
			"publication_type": pub.Type,
			"year":             pub.Year,
			"journal":          pub.Journal,
			"volume":           pub.Volume,
			"issue":            pub.Issue,
			"pages":            pub.Pages,
			"doi":              pub.DOI,
			"url":              pub.URL,
			"status":           pub.Status,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": pub.ID}).
		Suffix("RETURNING " + publicationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update publication query: %w", err)
	}

	updated := &models.Publication{}
	err = r.scanPublication(tx.QueryRow(ctx, sql, args...), updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("publicationID", pub.ID).Msg("Error executing update publication query")
		return nil, fmt.Errorf("error updating publication: %w", err)
	}

	delSQL, delArgs, err := r.sb.Delete("publication_authors").
		Where(squirrel.Eq{"publication_id": pub.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete authors query: %w", err)
	}
	if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return nil, fmt.Errorf("error deleting publication authors: %w", err)
	}

	if err := r.insertAuthors(ctx, tx, pub.ID, pub.Authors); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing publication transaction: %w", err)
	}

	updated.Authors = make([]models.Author, len(pub.Authors))
	copy(updated.Authors, pub.Authors)
	for i := range updated.Authors {
		updated.Authors[i].PublicationID = pub.ID
		updated.Authors[i].Position = i
	}
	return updated, nil
}

// UpdatePdfURL replaces the stored PDF reference, returning the previous
// URL so the caller can remove the old object from the media host.
func (r *PublicationRepository) UpdatePdfURL(ctx context.Context, id int64, pdfURL string) (oldURL *string, err error) {
	var old *string
	err = r.db.QueryRow(ctx, `SELECT pdf_url FROM publications WHERE id = $1`, id).Scan(&old)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting publication pdf url: %w", err)
	}

	sql, args, err := r.sb.Update("publications").
		SetMap(map[string]interface{}{
			"pdf_url":    pdfURL,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update pdf query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("publicationID", id).Msg("Error executing update pdf query")
		return nil, fmt.Errorf("error updating publication pdf: %w", err)
	}
	return old, nil
}

// Delete removes a publication. The authors row cascade is handled by the
// foreign key. Deleting a missing row succeeds.
func (r *PublicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("publications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete publication query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("publicationID", id).Msg("Error executing delete publication query")
		return fmt.Errorf("error deleting publication: %w", err)
	}
	return nil
}

func (r *PublicationRepository) insertAuthors(ctx context.Context, tx pgx.Tx, publicationID int64, authors []models.Author) error {
	if len(authors) == 0 {
		return nil
	}

	builder := r.sb.Insert("publication_authors").
		Columns("publication_id", "position", "name", "institution", "is_main_author")
	for i, author := range authors {
		builder = builder.Values(publicationID, i, author.Name, author.Institution, author.IsMainAuthor)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert authors query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("publicationID", publicationID).Msg("Error executing insert authors query")
		return fmt.Errorf("error inserting publication authors: %w", err)
	}
	return nil
}

func (r *PublicationRepository) loadAuthors(ctx context.Context, publicationIDs []int64) (map[int64][]models.Author, error) {
	sql, args, err := r.sb.Select("id", "publication_id", "position", "name", "institution", "is_main_author").
		From("publication_authors").
		Where(squirrel.Eq{"publication_id": publicationIDs}).
		OrderBy("publication_id", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load authors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing load authors query")
		return nil, fmt.Errorf("error loading publication authors: %w", err)
	}
	defer rows.Close()

	byPub := make(map[int64][]models.Author)
	for rows.Next() {
		var author models.Author
		err := rows.Scan(&author.ID, &author.PublicationID, &author.Position,
			&author.Name, &author.Institution, &author.IsMainAuthor)
		if err != nil {
			return nil, fmt.Errorf("error scanning author row: %w", err)
		}
		byPub[author.PublicationID] = append(byPub[author.PublicationID], author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}
	return byPub, nil
}

func (r *PublicationRepository) scanPublication(row pgx.Row, pub *models.Publication) error {
	return row.Scan(
		&pub.ID, &pub.Title, &pub.Abstract, &pub.Type, &pub.Year,
		&pub.Journal, &pub.Volume, &pub.Issue, &pub.Pages, &pub.DOI,
		&pub.URL, &pub.PdfURL, &pub.Status, &pub.CreatedAt, &pub.UpdatedAt,
	)
}
