package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
)

//go:generate mockgen -source=ad.go -destination=mocks/mock_ad.go -package=mocks

const (
	adsTable = "ads"
)

var adColumns = []string{
	"title",
	"description",
	"platform",
	"image_url",
	"video_url",
	"likes",
	"comments",
	"shares",
	"country",
	"days_active",
	"brand",
	"category",
	"ad_url",
	"user_id",
	"scraped_at",
}

// AdRepository só acrescenta linhas; nada é atualizado ou removido
type AdRepository interface {
	InsertBatch(ctx context.Context, ads []*domain.Ad) ([]*domain.Ad, error)
}

type adRepository struct {
	conn postgres.Conn
}

func NewAdRepository(conn postgres.Conn) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

// InsertBatch grava todos os anúncios em um único INSERT multi-linha e preenche os ids gerados
func (r *adRepository) InsertBatch(ctx context.Context, ads []*domain.Ad) ([]*domain.Ad, error) {
	if len(ads) == 0 {
		return []*domain.Ad{}, nil
	}

	sqlQuery, args, err := buildInsertQuery(ads)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, sqlQuery, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		i := 0
		for rows.Next() {
			if i >= len(ads) {
				return errors.New("mais ids retornados do que linhas inseridas")
			}
			if err := rows.Scan(&ads[i].ID); err != nil {
				return err
			}
			i++
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if i != len(ads) {
			return errors.Errorf("%d ids retornados para %d linhas inseridas", i, len(ads))
		}
		return nil
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
		}
		return nil, errors.Wrap(err, "erro ao executar a query")
	}

	return ads, nil
}

func buildInsertQuery(ads []*domain.Ad) (string, []interface{}, error) {
	query := squirrel.
		Insert(adsTable).
		Columns(adColumns...)

	for _, ad := range ads {
		query = query.Values(
			ad.Title,
			ad.Description,
			ad.Platform,
			ad.ImageURL,
			ad.VideoURL,
			ad.Likes,
			ad.Comments,
			ad.Shares,
			ad.Country,
			ad.DaysActive,
			ad.Brand,
			ad.Category,
			ad.AdURL,
			ad.UserID,
			ad.ScrapedAt,
		)
	}

	return query.
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
