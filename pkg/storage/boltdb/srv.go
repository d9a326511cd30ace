// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package boltdb

import (
	"context"
	"encoding/json"

	"github.com/ortuman/jackal-client/pkg/util/dns"
	bolt "go.etcd.io/bbolt"
)

const srvBucket = "srv"

type srvResult struct {
	dns.Result
}

func (r *srvResult) MarshalBinary() ([]byte, error) {
	return json.Marshal(&r.Result)
}

func (r *srvResult) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, &r.Result)
}

type boltDBSRVRep struct {
	tx *bolt.Tx
}

func newSRVRep(tx *bolt.Tx) *boltDBSRVRep {
	return &boltDBSRVRep{tx: tx}
}

func (r *boltDBSRVRep) UpsertResult(_ context.Context, res *dns.Result) error {
	op := upsertKeyOp{
		tx:     r.tx,
		bucket: srvBucket,
		key:    res.Domain,
		obj:    &srvResult{Result: *res},
	}
	return op.do()
}

func (r *boltDBSRVRep) FetchResult(_ context.Context, domain string) (*dns.Result, error) {
	op := fetchKeyOp{
		tx:     r.tx,
		bucket: srvBucket,
		key:    domain,
		obj:    &srvResult{},
	}
	obj, err := op.do()
	if err != nil {
		return nil, err
	}
	switch {
	case obj != nil:
		return &obj.(*srvResult).Result, nil
	default:
		return nil, nil
	}
}

func (r *boltDBSRVRep) FetchResults(_ context.Context) ([]*dns.Result, error) {
	var retVal []*dns.Result
	op := iterKeysOp{
		tx:     r.tx,
		bucket: srvBucket,
		iterFn: func(_, b []byte) error {
			var res srvResult
			if err := res.UnmarshalBinary(b); err != nil {
				return err
			}
			retVal = append(retVal, &res.Result)
			return nil
		},
	}
	if err := op.do(); err != nil {
		return nil, err
	}
	return retVal, nil
}

func (r *boltDBSRVRep) DeleteResult(_ context.Context, domain string) error {
	op := delKeyOp{
		tx:     r.tx,
		bucket: srvBucket,
		key:    domain,
	}
	return op.do()
}

// UpsertResult satisfies dns.Cache interface.
func (r *Repository) UpsertResult(ctx context.Context, res *dns.Result) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newSRVRep(tx).UpsertResult(ctx, res)
	})
}

// FetchResult satisfies dns.Cache interface.
func (r *Repository) FetchResult(ctx context.Context, domain string) (res *dns.Result, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		res, err = newSRVRep(tx).FetchResult(ctx, domain)
		return err
	})
	return
}

// FetchResults returns every stored resolution result.
func (r *Repository) FetchResults(ctx context.Context) (results []*dns.Result, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		results, err = newSRVRep(tx).FetchResults(ctx)
		return err
	})
	return
}

// DeleteResult removes a stored domain resolution result.
func (r *Repository) DeleteResult(ctx context.Context, domain string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newSRVRep(tx).DeleteResult(ctx, domain)
	})
}
