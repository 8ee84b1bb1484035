package graph

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint hashes item kind and source text
func Fingerprint(kind Kind, text string) uint64 {
	data := make([]byte, 0, len(kind)+1+len(text))
	data = append(data, string(kind)...)
	data = append(data, 0)
	data = append(data, text...)
	value, _ := Hash(data)
	return value
}
