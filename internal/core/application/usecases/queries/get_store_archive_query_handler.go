package queries

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

var yearKey = regexp.MustCompile(`^\d{4}$`)

type GetStoreArchiveQueryHandler struct {
	store ports.DocumentStore
}

func NewGetStoreArchiveQueryHandler(store ports.DocumentStore) GetStoreArchiveQueryHandler {
	return GetStoreArchiveQueryHandler{store: store}
}

// Handle lists years newest first, months and days in calendar order and a
// day's orders newest first. Keys that are not numbers are skipped.
func (h GetStoreArchiveQueryHandler) Handle(
	ctx context.Context,
	query GetStoreArchiveQuery,
) (GetStoreArchiveQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStoreArchiveQueryResponse{}, err
	}

	path := docpath.StoreArchive(query.StoreID(), query.Parts()...)
	resp := GetStoreArchiveQueryResponse{Level: query.Level()}

	if query.Level() == ArchiveOrders {
		orders, err := listStoreOrders(ctx, h.store, path, true)
		if err != nil {
			return GetStoreArchiveQueryResponse{}, err
		}
		storeNewestFirst(orders)
		resp.Orders = orders
		return resp, nil
	}

	folders := map[string]json.RawMessage{}
	err := h.store.Get(ctx, path, &folders)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return GetStoreArchiveQueryResponse{}, err
	}

	keys := make([]string, 0, len(folders))
	for k := range folders {
		if _, convErr := strconv.Atoi(k); convErr != nil {
			continue
		}
		if query.Level() == ArchiveYears && !yearKey.MatchString(k) {
			continue
		}
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		if query.Level() == ArchiveYears {
			return a > b
		}
		return a < b
	})
	resp.Keys = keys
	return resp, nil
}
