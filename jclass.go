package jclass

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/errors"
)

// DecodeAll parses images concurrently. The result keeps input order.
// The first failure cancels the remaining work and is returned wrapped
// with the index of the failing image.
func DecodeAll(ctx context.Context, images [][]byte, opts ...classfile.Option) ([]*classfile.ClassFile, error) {
	out := make([]*classfile.ClassFile, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, data := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cf, err := classfile.Parse(data, opts...)
			if err != nil {
				return errors.New(errors.PhaseDecode, errors.KindInvalidInput).
					Detail("image %d", i).
					Cause(err).
					Build()
			}
			out[i] = cf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
