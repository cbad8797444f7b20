package interfaces

// CacheStatus reports how a cached read was served
type CacheStatus string

const (
	CacheStatusHit     CacheStatus = "hit"
	CacheStatusMiss    CacheStatus = "miss"
	CacheStatusRefresh CacheStatus = "refresh"
)

func (cs CacheStatus) String() string {
	return string(cs)
}
