// Package splits reads the train/val/test rating tables that assign each
// audio file a partition label and a MOS rating.
package splits
