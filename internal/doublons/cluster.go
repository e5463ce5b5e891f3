package doublons

// Cluster groups size-sorted records into classes of byte-identical files.
//
// Each unprocessed record in turn becomes an anchor; every later unprocessed
// record of the same size that cmp finds byte-equal joins its class and is
// marked processed. Classes with a single member are dropped. Any comparator
// error aborts clustering.
func Cluster(records []FileRecord, cmp Comparator) ([]Class, error) {
	return cluster(records, cmp, logger{})
}

func cluster(records []FileRecord, cmp Comparator, log logger) ([]Class, error) {
	processed := make([]bool, len(records))

	classes := make([]Class, 0)

	for i, anchor := range records {
		if processed[i] {
			continue
		}

		processed[i] = true

		class := Class{Paths: []string{anchor.Path}, Size: anchor.Size}
		samePerms := 1

		for j := i + 1; j < len(records); j++ {
			// Sorted input: no later record can match once sizes grow.
			if records[j].Size != anchor.Size {
				break
			}

			if processed[j] {
				continue
			}

			equal, err := cmp.BytesEqual(anchor.Path, records[j].Path)
			if err != nil {
				return nil, err
			}

			if !equal {
				continue
			}

			processed[j] = true
			class.Paths = append(class.Paths, records[j].Path)

			perms, err := cmp.PermissionsEqual(anchor.Path, records[j].Path)
			if err != nil {
				return nil, err
			}

			if perms {
				samePerms++
			}
		}

		if len(class.Paths) < 2 {
			continue
		}

		class.SamePermissions = samePerms == len(class.Paths)
		log.printf("[debug]: class of %d (%d bytes, terminator %s)\n", len(class.Paths), class.Size, class.Terminator())

		classes = append(classes, class)
	}

	return classes, nil
}
