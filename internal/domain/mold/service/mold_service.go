package service

import (
	blockModel "canvas_blog/internal/domain/block/model"
	blockRepo "canvas_blog/internal/domain/block/repository"
	"canvas_blog/internal/domain/mold/model"
	"canvas_blog/internal/domain/mold/repository"
	postRepo "canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/authz"

	"gorm.io/gorm"
)

// MoldService 布局模板管理
type MoldService interface {
	SaveLayouts(userID string, specs []blockModel.BlockSpec, moldName string) (*model.MoldWithLayouts, error)
	ListMolds(userID string) ([]model.Mold, error)
	GetMoldWithLayouts(userID, moldID string) (*model.MoldWithLayouts, error)
	DeleteMold(moldID, userID string) error
}

type moldService struct {
	db     *gorm.DB
	molds  repository.MoldRepository
	blocks blockRepo.BlockRepository
	posts  postRepo.PostRepository
}

func NewMoldService(db *gorm.DB, molds repository.MoldRepository, blocks blockRepo.BlockRepository, posts postRepo.PostRepository) MoldService {
	return &moldService{db: db, molds: molds, blocks: blocks, posts: posts}
}

// SaveLayouts 保存布局
// moldName 非空时建新模板并把块挂上去，否则块独立存在
func (s *moldService) SaveLayouts(userID string, specs []blockModel.BlockSpec, moldName string) (*model.MoldWithLayouts, error) {
	if err := blockModel.ValidateSpecs(specs); err != nil {
		return nil, err
	}
	if err := blockModel.NormalizeMain(specs); err != nil {
		return nil, err
	}

	result := &model.MoldWithLayouts{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var moldID *string
		if moldName != "" {
			mold := &model.Mold{Name: moldName, UserID: &userID}
			if err := s.molds.WithTx(tx).Create(mold); err != nil {
				return err
			}
			moldID = &mold.ID
			result.MoldID = mold.ID
			result.Title = mold.Name
		}

		blocks := make([]*blockModel.Block, 0, len(specs))
		for _, spec := range specs {
			var block *blockModel.Block
			if spec.ID != "" {
				// 复用既有块：整行加载后只改定位字段，
				// 创建时间和类型标签保持原样
				existing, err := s.blocks.WithTx(tx).GetByID(spec.ID)
				if err != nil {
					return err
				}
				if existing.MoldID != nil {
					// 已经挂在别的模板上的块，只有模板所有者能动
					owner, err := s.molds.WithTx(tx).GetByID(*existing.MoldID)
					if err != nil {
						return err
					}
					if err := authz.CheckOptionalOwner(userID, owner.UserID); err != nil {
						return err
					}
				}
				existing.X = spec.X
				existing.Y = spec.Y
				existing.Width = spec.Width
				existing.Height = spec.Height
				existing.Explanation = spec.Explanation
				existing.Main = spec.Main
				if moldID != nil {
					existing.MoldID = moldID
				}
				block = existing
			} else {
				block = &blockModel.Block{
					MoldID:      moldID,
					X:           spec.X,
					Y:           spec.Y,
					Width:       spec.Width,
					Height:      spec.Height,
					Explanation: spec.Explanation,
					Main:        spec.Main,
					Type:        spec.Type,
				}
			}
			blocks = append(blocks, block)
		}
		if err := s.blocks.WithTx(tx).Save(blocks); err != nil {
			return err
		}

		result.Blocks = make([]blockModel.Block, 0, len(blocks))
		for _, b := range blocks {
			result.Blocks = append(result.Blocks, *b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListMolds 我的模板列表
func (s *moldService) ListMolds(userID string) ([]model.Mold, error) {
	return s.molds.FindByUser(userID)
}

// GetMoldWithLayouts 模板及其块
func (s *moldService) GetMoldWithLayouts(userID, moldID string) (*model.MoldWithLayouts, error) {
	mold, err := s.molds.GetByID(moldID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckOptionalOwner(userID, mold.UserID); err != nil {
		return nil, err
	}

	blocks, err := s.blocks.FindByMold(moldID)
	if err != nil {
		return nil, err
	}
	return &model.MoldWithLayouts{
		MoldID: mold.ID,
		Title:  mold.Name,
		Blocks: blocks,
	}, nil
}

// DeleteMold 删除模板
// 引用它的帖子和块只解除引用（detach），绝不级联删除
func (s *moldService) DeleteMold(moldID, userID string) error {
	mold, err := s.molds.GetByID(moldID)
	if err != nil {
		return err
	}
	if err := authz.CheckOptionalOwner(userID, mold.UserID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).DetachMold(moldID); err != nil {
			return err
		}
		if err := s.blocks.WithTx(tx).DetachMold(moldID); err != nil {
			return err
		}
		return s.molds.WithTx(tx).Delete(mold)
	})
}
