package binparser

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/thebagchi/binparser/internal/source"
)

// Result is one decoded object (or terminal error) delivered by Stream.
type Result struct {
	Obj Object
	Err error
}

// pumpChunkSize bounds how much of r is read into the StreamSource per
// ingestion call; it has no bearing on decode correctness, only on how
// finely the producer interleaves with the consumer.
const pumpChunkSize = 32 * 1024

// Stream decodes a sequence of objects back-to-back from r, pushing each
// completed object (or the terminal error) onto the returned channel, which
// is closed once r is exhausted or ctx is canceled. Internally, one
// goroutine pumps bytes from r into a StreamSource and a second runs the
// descriptor's decode loop against it, coordinated via errgroup so a
// failure on either side cancels the other. A decode error is surfaced as
// the final Result; a read error from r closes the source like end of
// input, and the channel then closes without a Result carrying it.
func (p *Parser) Stream(ctx context.Context, r io.Reader) <-chan Result {
	out := make(chan Result)
	src := source.NewStreamSource()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer src.Close()
		buf := make([]byte, pumpChunkSize)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				src.Write(chunk)
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return wrapf(err, "stream: reading source")
			}
		}
	})

	g.Go(func() error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			obj, done, err := p.decode(src, nil)
			if err != nil {
				out <- Result{Err: err}
				return err
			}
			if done {
				return nil
			}
			select {
			case out <- Result{Obj: obj}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	go func() {
		_ = g.Wait()
	}()

	return out
}
