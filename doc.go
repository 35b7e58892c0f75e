/*
 * doc.go, part of plopmetrics.
 *
 * Copyright 2026 The plopmetrics authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package plop works with the trajectory files written by PLOP and similar programs, where
each model is preceded by a block of "REMARK key value" lines with metrics for the model
(energies, step numbers, the processor that produced it...).

	**Capabilities**

    Reads all the trajectories in a directory (plain, gzip or zstd compressed) into a
	list of Records, one per model, with the metrics and the position of the model
	in its file.

    Selects records with a boolean expression over the metrics, such as
	"'Proc' == 1 and 'Binding Ene' < -80" (see the filter sub-package).

    Writes a single trajectory with the selected models, and tables (plain
	text or CSV) with the selected metrics. Plots are in the metplot sub-package.

A typical use:

	records, err := plop.ProcessDir("run", "traj", nil)
	selection, err := filter.Select("'Proc' == 1 and 'Energy' < -26759", records)
	err = plop.TrajFileWrite("selected.pdb", selection, nil)
	err = plop.MetricsFileWrite("metrics.dat", []string{"Proc", "Energy"}, selection)

Metric keys are normalized: lower case, with spaces replaced by underscores, so
"REMARK  L1  Binding Ene|    -81.535" gives the key "l1_binding_ene". Use Normalize
to go from a name to its key.

Note that a record is only stored when the next block of metadata starts, so the
last model of each file is not read, unless Options.FlushLast is set.
*/
package plop
