package svmaster

import (
	"context"
	"errors"
	"fmt"

	"ftaorigin/internal/app/domains/entity/etpart"
	"ftaorigin/internal/app/domains/repo/rpdetermination"
	"ftaorigin/internal/app/domains/repo/rppart"
	"ftaorigin/internal/app/pkg/errorx"
	"ftaorigin/internal/app/pkg/logger"
)

// MasterService 物料主数据与 BOM 维护
type MasterService struct {
	partRepo          rppart.PartRepository
	determinationRepo rpdetermination.DeterminationRepository
	logger            logger.Logger
}

// NewMasterService 创建主数据服务实例
func NewMasterService(
	partRepo rppart.PartRepository,
	determinationRepo rpdetermination.DeterminationRepository,
	log logger.Logger,
) *MasterService {
	return &MasterService{
		partRepo:          partRepo,
		determinationRepo: determinationRepo,
		logger:            log,
	}
}

// ListParts 查询零件，partType 为空时返回全部
func (s *MasterService) ListParts(ctx context.Context, partType string) ([]*etpart.Part, error) {
	return s.partRepo.List(ctx, partType)
}

// GetPart 查询单个零件
func (s *MasterService) GetPart(ctx context.Context, partID string) (*etpart.Part, error) {
	return s.partRepo.GetByID(ctx, partID)
}

// ListEdges 查询全部 BOM 边
func (s *MasterService) ListEdges(ctx context.Context) ([]*etpart.BOMEdge, error) {
	return s.partRepo.ListEdges(ctx)
}

// CreatePart 创建零件（物料号不可重复）
func (s *MasterService) CreatePart(ctx context.Context, part *etpart.Part) error {
	existing, err := s.partRepo.GetByID(ctx, part.ID)
	if err != nil && !errors.Is(err, errorx.ErrPartNotFound) {
		return err
	}
	if existing != nil {
		return errorx.NewBusinessError(409, fmt.Sprintf("part already exists: %s", part.ID))
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		return fmt.Errorf("create part failed: %w", err)
	}
	s.logger.Infof(ctx, "[MasterService] part created: id=%s, hs=%s, origin=%s", part.ID, part.HSCode, part.Origin)
	return nil
}

// CreateEdge 创建 BOM 边，父件与子件必须已存在
func (s *MasterService) CreateEdge(ctx context.Context, edge *etpart.BOMEdge) error {
	for _, id := range []string{edge.ParentID, edge.ChildID} {
		if _, err := s.partRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, errorx.ErrPartNotFound) {
				return fmt.Errorf("bom part %s: %w", id, err)
			}
			return err
		}
	}

	if err := s.partRepo.CreateEdge(ctx, edge); err != nil {
		return fmt.Errorf("create bom edge failed: %w", err)
	}
	s.logger.Infof(ctx, "[MasterService] bom edge created: %s -> %s x %s", edge.ParentID, edge.ChildID, edge.Quantity)
	return nil
}

// ResetAndSeed 清空物料、BOM、判定历史并写入示例数据
func (s *MasterService) ResetAndSeed(ctx context.Context) error {
	if err := s.determinationRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear history failed: %w", err)
	}
	if err := s.partRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear master data failed: %w", err)
	}

	parts, edges, err := SeedData()
	if err != nil {
		return err
	}
	for _, p := range parts {
		if err := s.partRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed part %s failed: %w", p.ID, err)
		}
	}
	for _, e := range edges {
		if err := s.partRepo.CreateEdge(ctx, e); err != nil {
			return fmt.Errorf("seed bom %s -> %s failed: %w", e.ParentID, e.ChildID, err)
		}
	}

	s.logger.Infof(ctx, "[MasterService] seed loaded: parts=%d, edges=%d", len(parts), len(edges))
	return nil
}
