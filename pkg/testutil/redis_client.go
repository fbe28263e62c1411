package testutil

import (
	"context"
	"errors"
	"time"
)

type MockRedisClient struct {
	ExistFunc    func(ctx context.Context, key string) (bool, error)
	DelFunc      func(ctx context.Context, key ...string) error
	LPushFunc    func(ctx context.Context, key string, values ...string) error
	LTrimFunc    func(ctx context.Context, key string, start, stop int64) error
	LRangeFunc   func(ctx context.Context, key string, start, stop int64) ([]string, error)
	SAddFunc     func(ctx context.Context, key string, members ...string) error
	SCardFunc    func(ctx context.Context, key string) (uint64, error)
	SMembersFunc func(ctx context.Context, key string) ([]string, error)
	SetFunc      func(ctx context.Context, key, value string) error
	SetObjFunc   func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetFunc      func(ctx context.Context, key string) (string, error)
	GetObjFunc   func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) LPush(ctx context.Context, key string, values ...string) error {
	if m.LPushFunc != nil {
		return m.LPushFunc(ctx, key, values...)
	}

	return nil
}

func (m *MockRedisClient) LTrim(ctx context.Context, key string, start, stop int64) error {
	if m.LTrimFunc != nil {
		return m.LTrimFunc(ctx, key, start, stop)
	}

	return nil
}

func (m *MockRedisClient) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.LRangeFunc != nil {
		return m.LRangeFunc(ctx, key, start, stop)
	}

	return nil, nil
}

func (m *MockRedisClient) SAdd(ctx context.Context, key string, members ...string) error {
	if m.SAddFunc != nil {
		return m.SAddFunc(ctx, key, members...)
	}

	return nil
}

func (m *MockRedisClient) SCard(ctx context.Context, key string) (uint64, error) {
	if m.SCardFunc != nil {
		return m.SCardFunc(ctx, key)
	}

	return 0, nil
}

func (m *MockRedisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.SMembersFunc != nil {
		return m.SMembersFunc(ctx, key)
	}

	return nil, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return errors.New("not found")
}
