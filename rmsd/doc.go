/*
Package rmsd superimposes point sets with the Kabsch algorithm and computes
root mean square deviations between them. The algorithm is described in
detail here: http://cnx.org/content/m11608/latest/

It also provides a greedy carbon-alpha residue correspondence between two
structures of different lengths, which is what lets the remodeled regions of
two designs be compared after they have been superimposed by their fixed
regions.
*/
package rmsd
