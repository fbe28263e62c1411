package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/mtaadao/backend/internal/entity"
	"github.com/mtaadao/backend/internal/repository"
	"github.com/mtaadao/backend/pkg/xcontext"
)

// SampleUser creates a user with randomized fields, overwritten by any
// non-zero field of init. The same convention applies to all samples below.
func SampleUser(ctx context.Context, init *entity.User) entity.User {
	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleDAO(ctx context.Context, init *entity.DAO) entity.DAO {
	sample := &entity.DAO{
		Base:        entity.Base{ID: uuid.NewString()},
		Handle:      uuid.NewString(),
		DisplayName: uuid.NewString(),
		Currency:    "KES",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewDAORepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleMember(ctx context.Context, init *entity.Member) entity.Member {
	sample := &entity.Member{Role: entity.MemberRoleMember}
	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.UserID == "" {
		sample.UserID = SampleUser(ctx, nil).ID
	}

	if err := repository.NewMemberRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleProposal(ctx context.Context, init *entity.Proposal) entity.Proposal {
	sample := &entity.Proposal{
		Base:   entity.Base{ID: uuid.NewString()},
		Title:  uuid.NewString(),
		Status: entity.ProposalPending,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewProposalRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleVote(ctx context.Context, init *entity.Vote) entity.Vote {
	sample := &entity.Vote{
		Base: entity.Base{ID: uuid.NewString()},
		Type: entity.VoteFor,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewVoteRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleDelegation(ctx context.Context, init *entity.VoteDelegation) entity.VoteDelegation {
	sample := &entity.VoteDelegation{}
	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewVoteDelegationRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleVault(ctx context.Context, init *entity.Vault) entity.Vault {
	sample := &entity.Vault{
		Base:     entity.Base{ID: uuid.NewString()},
		Name:     uuid.NewString(),
		Currency: "KES",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewVaultRepository().Upsert(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleTransaction(ctx context.Context, init *entity.Transaction) entity.Transaction {
	sample := &entity.Transaction{
		Base:     entity.Base{ID: uuid.NewString()},
		Type:     entity.TransactionDeposit,
		Amount:   100,
		Currency: "KES",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewTransactionRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleActivity(ctx context.Context, init *entity.ActivityEvent) entity.ActivityEvent {
	sample := &entity.ActivityEvent{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		CreatedAt: time.Now(),
		Type:      entity.ActivityContribution,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewActivityRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleTask(ctx context.Context, init *entity.Task) entity.Task {
	sample := &entity.Task{
		Base:   entity.Base{ID: uuid.NewString()},
		Title:  uuid.NewString(),
		Status: entity.TaskOpen,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewTaskRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	overwriteStructFields(reflect.ValueOf(origin).Elem(), reflect.ValueOf(overwrite))
}

func overwriteStructFields(originValue, overwriteValue reflect.Value) {
	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		// Recurse into embedded structs (e.g. entity.Base) so setting one of
		// their fields does not clobber the siblings already sampled.
		if overwriteValue.Type().Field(i).Anonymous && overwriteField.Kind() == reflect.Struct {
			overwriteStructFields(originValue.Field(i), overwriteField)
			continue
		}

		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
