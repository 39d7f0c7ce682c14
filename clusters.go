package hk

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Cluster is a group of agents whose opinions agree up to the numerical
// tolerance eps. Opinion is the opinion of the cluster's first member.
type Cluster struct {
	Opinion float64
	Size    int
}

// Clusters groups the current agent population into opinion clusters, in
// order of first appearance.
func (m *Model) Clusters() []Cluster {
	var clusters []Cluster
agents:
	for _, a := range m.agents {
		for i := range clusters {
			if abs(a.Opinion-clusters[i].Opinion) < eps {
				clusters[i].Size++
				continue agents
			}
		}
		clusters = append(clusters, Cluster{Opinion: a.Opinion, Size: 1})
	}
	return clusters
}

// ClusterSizes returns the sizes of all opinion clusters.
func (m *Model) ClusterSizes() []int {
	clusters := m.Clusters()
	sizes := make([]int, len(clusters))
	for i, c := range clusters {
		sizes[i] = c.Size
	}
	return sizes
}

// WriteClusterSizes writes the cluster positions as a comment line followed
// by a line of cluster sizes:
//
//	# 0.1873 0.5021 0.8450
//	312 405 307
//
// This is the record format consumed by downstream analysis scripts.
func (m *Model) WriteClusterSizes(w io.Writer) error {
	clusters := m.Clusters()
	positions := make([]string, len(clusters))
	sizes := make([]string, len(clusters))
	for i, c := range clusters {
		positions[i] = strconv.FormatFloat(c.Opinion, 'g', -1, 64)
		sizes[i] = strconv.Itoa(c.Size)
	}
	if _, err := fmt.Fprintf(w, "# %s\n", strings.Join(positions, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(sizes, " "))
	return err
}
