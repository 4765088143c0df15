package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/store"
)

// CreateLinkWithAssociations создаёт ссылку, её статус и, если заданы id_area или id_cat,
// классификацию. Записи выполняются строго по порядку: основная запись, статус,
// классификация. Транзакции между шагами нет: при ошибке зависимой вставки уже
// созданные строки остаются в хранилище, если не включена компенсация.
func (s *Service) CreateLinkWithAssociations(ctx context.Context, req models.CreateLinkRequest) (models.Created, error) {
	mainRow, statusRow, classificationRow := ToStoreRows(req)

	inserted, err := s.store.Insert(ctx, store.TableLinks, mainRow)
	if err != nil {
		s.logger.Error("Failed to create link", zap.String("step", StepMain), zap.Error(err))
		return models.Created{}, &StoreWriteError{Step: StepMain, Table: store.TableLinks, Err: err}
	}
	if len(inserted) == 0 {
		return models.Created{}, &StoreWriteError{Step: StepMain, Table: store.TableLinks, Err: ErrNoRowReturned}
	}
	sourceID, ok := inserted[0].Int64("id")
	if !ok {
		s.logger.Error("Store returned link without id", zap.Any("row", inserted[0]))
		// Строка записана, но без id её нельзя ни связать, ни удалить
		return models.Created{}, &StoreWriteError{
			Step:      StepMain,
			Table:     store.TableLinks,
			Committed: []store.Table{store.TableLinks},
			Err:       ErrMissingSourceID,
		}
	}

	written := []store.Table{store.TableLinks}

	statusRow["id_src"] = sourceID
	if _, err := s.store.Insert(ctx, store.TableLinkStatus, statusRow); err != nil {
		return models.Created{}, s.failAssociation(ctx, sourceID, StepStatus, store.TableLinkStatus, written, err)
	}
	written = append(written, store.TableLinkStatus)

	if classificationRow != nil {
		classificationRow["id_src"] = sourceID
		if _, err := s.store.Insert(ctx, store.TableClassifications, classificationRow); err != nil {
			return models.Created{}, s.failAssociation(ctx, sourceID, StepClassification, store.TableClassifications, written, err)
		}
	}

	s.logger.Info("Link created", zap.Int64("id", sourceID), zap.Bool("classified", classificationRow != nil))
	return models.Created{ID: sourceID}, nil
}

// failAssociation логирует ошибку зависимой вставки и, если включено, удаляет уже
// записанные строки в обратном порядке
func (s *Service) failAssociation(ctx context.Context, sourceID int64, step string, table store.Table, written []store.Table, cause error) error {
	s.logger.Error("Failed to create link association",
		zap.String("step", step),
		zap.Int64("id", sourceID),
		zap.Error(cause),
	)
	werr := &StoreWriteError{Step: step, Table: table, Committed: written, Err: cause}
	if !s.compensate {
		s.logger.Warn("Link left without dependent rows", zap.Int64("id", sourceID), zap.String("missing", string(table)))
		return werr
	}

	// Компенсация не должна прерываться отменой запроса
	ctx = context.WithoutCancel(ctx)
	werr.Compensated = true
	for i := len(written) - 1; i >= 0; i-- {
		filter := store.Filter{"id_src": sourceID}
		if written[i] == store.TableLinks {
			filter = store.Filter{"id": sourceID}
		}
		if err := s.store.Delete(ctx, written[i], filter); err != nil {
			s.logger.Error("Failed to compensate write", zap.String("table", string(written[i])), zap.Int64("id", sourceID), zap.Error(err))
			werr.Compensated = false
		}
	}
	return werr
}

// ListLinksWithAssociations возвращает все ссылки, новые первыми, со статусом и классификацией
func (s *Service) ListLinksWithAssociations(ctx context.Context) ([]models.LinkView, error) {
	rows, err := s.selectRows(ctx, store.TableLinks, nil, store.OrderBy("id", true))
	if err != nil {
		return nil, err
	}
	return s.attachAssociations(ctx, rows)
}

// GetLinkWithAssociations возвращает одну ссылку со связанными записями
func (s *Service) GetLinkWithAssociations(ctx context.Context, id int64) (models.LinkView, error) {
	row, err := s.selectOne(ctx, store.TableLinks, id)
	if err != nil {
		return models.LinkView{}, err
	}
	views, err := s.attachAssociations(ctx, []store.Row{row})
	if err != nil {
		return models.LinkView{}, err
	}
	return views[0], nil
}

// attachAssociations дочитывает статус и классификацию для набора ссылок двумя запросами по id_src
func (s *Service) attachAssociations(ctx context.Context, rows []store.Row) ([]models.LinkView, error) {
	views := make([]models.LinkView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		id, _ := r.Int64("id")
		ids = append(ids, id)
	}

	statusRows, err := s.selectRows(ctx, store.TableLinkStatus, store.Filter{"id_src": ids}, store.OrderBy("id", false))
	if err != nil {
		return nil, err
	}
	classificationRows, err := s.selectRows(ctx, store.TableClassifications, store.Filter{"id_src": ids}, store.OrderBy("id", false))
	if err != nil {
		return nil, err
	}

	statuses := make(map[int64]*models.LinkStatus, len(statusRows))
	for _, r := range statusRows {
		src, _ := r.Int64("id_src")
		if _, seen := statuses[src]; !seen {
			statuses[src] = statusFromRow(r)
		}
	}
	classifications := make(map[int64]*models.LinkClassification, len(classificationRows))
	for _, r := range classificationRows {
		src, _ := r.Int64("id_src")
		if _, seen := classifications[src]; !seen {
			classifications[src] = classificationFromRow(r)
		}
	}

	for _, r := range rows {
		link := linkFromRow(r)
		views = append(views, models.LinkView{
			Link:           link,
			Status:         statuses[link.ID],
			Classification: classifications[link.ID],
		})
	}
	return views, nil
}

// UpdateLink изменяет поля основной записи ссылки
func (s *Service) UpdateLink(ctx context.Context, id int64, in models.LinkInput) (models.Link, error) {
	row, err := s.updateOne(ctx, store.TableLinks, id, linkPatch(in))
	if err != nil {
		return models.Link{}, err
	}
	return linkFromRow(row), nil
}

// DeleteLink удаляет основную запись ссылки. Статус, классификация и элементы
// списков, ссылающиеся на неё, не удаляются.
func (s *Service) DeleteLink(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, store.TableLinks, id)
}
