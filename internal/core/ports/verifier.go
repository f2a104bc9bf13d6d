package ports

// Verifier defines the interface for verifying file existence.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// MissingOutputs returns the outputs that do not exist below root, in input order.
	MissingOutputs(root string, outputs []string) ([]string, error)
}
