package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookbazar/internal/domain/book"
)

// Service 购物车领域服务,封装加购合并与越权校验
//
// 业务规则:
// 1. 加购时先校验图书存在
// 2. 重复加购同一本书时数量合并,而非新增记录
// 3. 数量调整为零等价于删除
// 4. 所有变更操作校验条目归属,防止越权操作他人购物车
type Service interface {
	AddItem(ctx context.Context, userID, bookID uint, quantity int) (*Item, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
	ListItems(ctx context.Context, userID uint) ([]*Item, error)
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建购物车服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*Item, error) {
	// 1. 校验图书存在
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 2. 已有条目则合并数量
	existing, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if err == nil {
		if err := existing.Merge(quantity); err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}

	// 3. 新建条目
	item, err := NewItem(userID, bookID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*Item, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	remove, err := item.SetQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if remove {
		if err := s.repo.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, item.ID)
}

func (s *service) ListItems(ctx context.Context, userID uint) ([]*Item, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

// ownedItem 查询条目并校验归属,归属他人时按不存在处理,避免泄露条目存在性
func (s *service) ownedItem(ctx context.Context, userID, itemID uint) (*Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrItemNotFound
	}
	return item, nil
}
