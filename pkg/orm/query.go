package orm

import (
	"time"

	"github.com/epicurean/epicurean/pkg/cache"
	"github.com/epicurean/epicurean/pkg/database"
	"github.com/epicurean/epicurean/pkg/metrics"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

// Cache runs the query through Redis: hit returns the cached rows, miss
// queries the database and stores the result for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
