package portal

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const materialCols = "id, lecturer_id, title, description, file_url, video_links, folder_items, class, subject, type, created_at, updated_at"

func scanMaterial(sc interface{ Scan(...any) error }) (StudyMaterial, error) {
	var m StudyMaterial
	err := sc.Scan(&m.ID, &m.LecturerID, &m.Title, &m.Description, &m.FileURL,
		pq.Array(&m.VideoLinks), pq.Array(&m.FolderItems), &m.Class, &m.Subject,
		&m.Type, &m.CreatedAt, &m.UpdatedAt)
	return m, translate(err)
}

// ListMaterials returns the lecturer's study materials, newest first.
func (s *SQLStore) ListMaterials(ctx context.Context, ownerID uuid.UUID) ([]StudyMaterial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+materialCols+`
		FROM study_materials
		WHERE lecturer_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []StudyMaterial{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// CreateMaterial shares new content. The input's type decides which content
// field may be set; mismatches are rejected before touching the database.
func (s *SQLStore) CreateMaterial(ctx context.Context, ownerID uuid.UUID, in StudyMaterialInput) (StudyMaterial, error) {
	if err := in.Validate(); err != nil {
		return StudyMaterial{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO study_materials (lecturer_id, title, description, file_url, video_links, folder_items, class, subject, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+materialCols+`
	`, ownerID, in.Title, in.Description, in.FileURL,
		pq.Array(in.VideoLinks), pq.Array(in.FolderItems), in.Class, in.Subject, in.Type)
	return scanMaterial(row)
}

// UpdateMaterial applies the non-nil patch fields. The type discriminator is
// fixed at creation; content edits stay within the declared shape.
func (s *SQLStore) UpdateMaterial(ctx context.Context, ownerID, id uuid.UUID, patch StudyMaterialPatch) (StudyMaterial, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets, args = set(sets, args, "title", *patch.Title)
	}
	if patch.Description != nil {
		sets, args = set(sets, args, "description", *patch.Description)
	}
	if patch.FileURL != nil {
		sets, args = set(sets, args, "file_url", *patch.FileURL)
	}
	if patch.VideoLinks != nil {
		sets, args = set(sets, args, "video_links", pq.Array(*patch.VideoLinks))
	}
	if patch.FolderItems != nil {
		sets, args = set(sets, args, "folder_items", pq.Array(*patch.FolderItems))
	}
	if patch.Class != nil {
		sets, args = set(sets, args, "class", *patch.Class)
	}
	if patch.Subject != nil {
		sets, args = set(sets, args, "subject", *patch.Subject)
	}
	q, args, ok := patchQuery("study_materials", sets, args, id, ownerID, materialCols)
	if !ok {
		return s.getMaterial(ctx, ownerID, id)
	}
	return scanMaterial(s.db.QueryRowContext(ctx, q, args...))
}

func (s *SQLStore) getMaterial(ctx context.Context, ownerID, id uuid.UUID) (StudyMaterial, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+materialCols+` FROM study_materials WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanMaterial(row)
}

// DeleteMaterial removes shared content. Idempotent.
func (s *SQLStore) DeleteMaterial(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM study_materials WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
