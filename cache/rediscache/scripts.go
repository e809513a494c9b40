package rediscache

import "github.com/redis/go-redis/v9"

// Each key is stored as a Redis hash with up to three fields:
//
//	v       the cached value bytes
//	tomb_s  the invalidation tombstone's wall-clock seconds component
//	tomb_ns the invalidation tombstone's nanoseconds component
//
// The tombstone fields persist independently of v, so a set that arrives
// after an invalidate can be told it's stale even though v itself was
// deleted by that invalidate. This is the server-side half of the
// monotonic-timestamp discipline that keeps a racing write from
// resurrecting a deleted key.

const tdGetScript = `
return redis.call('HGET', KEYS[1], 'v')
`

const tdSetScript = `
local tomb_s = tonumber(redis.call('HGET', KEYS[1], 'tomb_s'))
local tomb_ns = tonumber(redis.call('HGET', KEYS[1], 'tomb_ns'))
local ts_s = tonumber(ARGV[2])
local ts_ns = tonumber(ARGV[3])
if tomb_s ~= nil then
	if tomb_s > ts_s or (tomb_s == ts_s and tomb_ns >= ts_ns) then
		return 0
	end
end
redis.call('HSET', KEYS[1], 'v', ARGV[1])
return 1
`

const tdInvalidateScript = `
local tomb_s = tonumber(redis.call('HGET', KEYS[1], 'tomb_s'))
local tomb_ns = tonumber(redis.call('HGET', KEYS[1], 'tomb_ns'))
local ts_s = tonumber(ARGV[1])
local ts_ns = tonumber(ARGV[2])
if tomb_s == nil or ts_s > tomb_s or (ts_s == tomb_s and ts_ns > tomb_ns) then
	redis.call('HSET', KEYS[1], 'tomb_s', ts_s, 'tomb_ns', ts_ns)
end
redis.call('HDEL', KEYS[1], 'v')
return redis.status_reply('OK')
`

var (
	tdGet        = redis.NewScript(tdGetScript)
	tdSet        = redis.NewScript(tdSetScript)
	tdInvalidate = redis.NewScript(tdInvalidateScript)
)
