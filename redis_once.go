package once

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
)

// deletes the marker only if this instance still owns it
var rollbackScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// NewRedisOnce returns a Runner whose at-most-once guarantee spans
// every process sharing the Redis instance and key. The first caller
// anywhere to claim the marker key runs the action; everyone else
// skips it. ttl bounds the marker's lifetime: the default of zero
// keeps it forever, a positive ttl turns the guarantee into at most
// once per ttl window.
func NewRedisOnce(cli redis.UniversalClient, key string, ttl ...time.Duration) *RedisOnce {
	var t time.Duration
	if len(ttl) > 0 && ttl[0] > 0 {
		t = ttl[0]
	}
	return &RedisOnce{
		cli:   cli,
		key:   "_redis_once:" + key,
		value: xid.New().String(),
		ttl:   t,
	}
}

type RedisOnce struct {
	local AtomicOnce
	cli   redis.UniversalClient
	key   string
	value string
	ttl   time.Duration
}

// Do runs f only if this call wins the cross-process marker. If f
// panics the marker is rolled back, so another caller may claim it,
// and the panic is re-raised. A failed Redis command decides nothing:
// f does not run, Done stays false and the next Do asks again. With a
// zero ttl a process that has seen the marker never asks Redis again.
func (o *RedisOnce) Do(f func()) {
	if o.ttl == 0 && o.local.Done() {
		return
	}
	r := o.cli.SetNX(context.Background(), o.key, o.value, o.ttl)
	if r.Err() != nil {
		return
	}
	if !r.Val() {
		// a marker genuinely exists, some caller already ran f
		if o.ttl == 0 {
			o.local.Do(nil)
		}
		return
	}
	defer func() {
		if p := recover(); p != nil {
			rollbackScript.Run(context.Background(), o.cli, []string{o.key}, o.value)
			panic(p)
		}
	}()
	if f != nil {
		f()
	}
	if o.ttl == 0 {
		o.local.Do(nil)
	}
}

// Done reports whether the action has run, in this process or any
// other sharing the key. Unreachable Redis reads as not done.
func (o *RedisOnce) Done() bool {
	if o.ttl == 0 && o.local.Done() {
		return true
	}
	r := o.cli.Exists(context.Background(), o.key)
	return r.Err() == nil && r.Val() > 0
}
