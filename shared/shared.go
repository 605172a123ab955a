package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	"bookit/shared/cache"
	"bookit/shared/constant"
	"bookit/shared/dto"
	"bookit/shared/timezone"
)

const (
	cacheKeySeparator = ":"
	queryDigestLength = 16
)

// CalculateTotalPage returns at least one page so empty lists still render.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields builds the SET map of a partial update from a request
// struct. Zero values and nil pointers are left out, set pointers are
// dereferenced, fields without a db tag are ignored. The audit columns are
// always stamped.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updated := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == constant.Empty || column == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		updated[column] = reflect.Indirect(field).Interface()
	}

	updated[constant.FieldModifiedAt] = timezone.Now()
	updated[constant.FieldModifiedBy] = username

	return updated
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Filter{
		Field:    fieldID,
		Value:    id,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	})
}

// FilterByStore scopes the given filters to a single store.
func FilterByStore(storeID, table string, filters ...any) dto.FilterGroup {
	return dto.And(append([]any{
		dto.Filter{
			Field:    constant.FieldStoreID,
			Value:    storeID,
			Operator: dto.FilterOperatorEq,
			Table:    table,
		},
	}, filters...)...)
}

func FilterByStoreAndID(storeID, id, fieldID, table string) dto.FilterGroup {
	return FilterByStore(storeID, table, dto.Filter{
		Field:    fieldID,
		Value:    id,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	})
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery appends a digest of the list parameters, so equal
// queries share an entry and the key stays short.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params dto.QueryParams
		Filter dto.FilterGroup
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return prefix
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:queryDigestLength]))
}

// InvalidateCaches drops every entry under prefix. Failures are logged only,
// stale entries expire with their TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
