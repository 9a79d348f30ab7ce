package helpers

import (
	"math"
	"net/url"
	"strconv"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	MaxPageLimit     = 100
	defaultPageLimit = 10
)

// Page is a zero-based page request. A zero Limit means no paging.
type Page struct {
	Limit int64
	Page  int64
}

func (p Page) Skip() int64 {
	if p.Limit <= 0 || p.Page <= 0 {
		return 0
	}
	if p.Page > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return p.Limit * p.Page
}

// ParsePage reads ?page and ?limit from the query string.
func ParsePage(q url.Values) (Page, error) {
	var p Page

	if v := q.Get("page"); v != "" {
		page, err := strconv.ParseInt(v, 10, 64)
		if err != nil || page < 0 {
			return p, apperror.Validation("Invalid page number")
		}
		p.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			return p, apperror.Validation("Invalid limit number")
		}
		if limit > MaxPageLimit {
			limit = MaxPageLimit
		}
		p.Limit = limit
	} else if p.Page > 0 {
		p.Limit = defaultPageLimit
	}

	// the skip must fit in an int64 for both stores
	if p.Limit > 0 && p.Page > math.MaxInt64/p.Limit {
		return Page{}, apperror.Validation("Invalid page number")
	}

	return p, nil
}

type mongoPaginate struct {
	limit int64
	page  int64
	sort  bson.D
}

func NewMongoPaginate(p Page) *mongoPaginate {
	return &mongoPaginate{
		limit: p.Limit,
		page:  p.Page,
	}
}

func (mp *mongoPaginate) SortQuery(sort bson.D) *mongoPaginate {
	if sort != nil {
		mp.sort = sort
	}
	return mp
}

func (mp *mongoPaginate) BuildFindOptions() *options.FindOptions {
	opts := options.Find()

	if mp.sort != nil {
		opts.SetSort(mp.sort)
	}

	if mp.limit > 0 {
		opts.SetLimit(mp.limit)
		opts.SetSkip(Page{Limit: mp.limit, Page: mp.page}.Skip())
	}

	return opts
}
