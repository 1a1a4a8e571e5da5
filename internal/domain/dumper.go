package domain

import "context"

type Dumper interface {
	Dump(ctx context.Context, archivePath string) error
	Replicate(ctx context.Context) error
	Ping(ctx context.Context) error
	GetName() string
}
