package model

import "strings"

// Categorize splits directory names into cluster network objects and plain
// server objects. A name containing the cluster keyword is a cluster object;
// the match is a plain substring test on the uppercased name.
func Categorize(names []string, clusterKeyword string) (clusters, servers []string) {
	keyword := strings.ToUpper(clusterKeyword)
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if keyword != "" && strings.Contains(name, keyword) {
			clusters = append(clusters, name)
		} else {
			servers = append(servers, name)
		}
	}
	return clusters, servers
}
