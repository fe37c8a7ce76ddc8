package store

import (
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"

	. "github.com/elves/selectkit/pkg/store/storedefs"
)

// Parameters for pick scores.
const (
	PickScoreDecay     = 0.986 // roughly 0.5^(1/50)
	PickScoreIncrement = 10
	PickScorePrecision = 6
)

// Top-level bucket holding one nested bucket per list.
const bucketPicks = "picks"

func init() {
	initDB["initialize pick history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPicks))
		return err
	}
}

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', PickScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}

// AddPick adds an item to the pick history of a list.
func (s *dbStore) AddPick(list, item string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketPicks)).CreateBucketIfNotExists([]byte(list))
		if err != nil {
			return err
		}

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := b.Put(k, marshalScore(unmarshalScore(v)*PickScoreDecay)); err != nil {
				return err
			}
		}

		k := []byte(item)
		score := float64(0)
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		score += PickScoreIncrement
		return b.Put(k, marshalScore(score))
	})
}

// DelPick deletes an item from the pick history of a list.
func (s *dbStore) DelPick(list, item string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPicks)).Bucket([]byte(list))
		if b == nil || b.Get([]byte(item)) == nil {
			return ErrNoPick
		}
		return b.Delete([]byte(item))
	})
}

// Picks lists the pick history of a list, ordered by scores in descending
// order. Items with the same score are ordered by name.
func (s *dbStore) Picks(list string) ([]Pick, error) {
	var picks []Pick
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPicks)).Bucket([]byte(list))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			picks = append(picks, Pick{Item: string(k), Score: unmarshalScore(v)})
			return nil
		})
	})
	// ForEach visits keys in byte order, so a stable sort keeps ties by name.
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Score > picks[j].Score
	})
	return picks, err
}

// Lists returns the names of the lists with at least one pick.
func (s *dbStore) Lists() ([]string, error) {
	var lists []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPicks)).ForEach(func(k, v []byte) error {
			// Nested buckets have a nil value.
			if v != nil {
				return nil
			}
			if first, _ := tx.Bucket([]byte(bucketPicks)).Bucket(k).Cursor().First(); first != nil {
				lists = append(lists, string(k))
			}
			return nil
		})
	})
	return lists, err
}
